package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a viewer or replay control derived from input.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionRestart
	ActionSnapshot
	ActionBack
)

// KeyMapper translates Bubble Tea key messages to toolkit actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a viewer action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return ActionQuit
	case "p", " ":
		return ActionPause
	case "r":
		return ActionRestart
	case "ctrl+s":
		return ActionSnapshot
	case "b", "esc":
		return ActionBack
	}

	return ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionRecordings
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRecordings
	}

	return MenuActionNone
}
