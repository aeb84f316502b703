package tui

import (
	"github.com/vovakirdan/vgasim/internal/config"
)

// cp437 spells out the terminal rune for every glyph byte, sixteen per
// line. This is the IBM PC code page the reference adapter's font ROM
// holds, with the NUL and no-break-space slots shown blank.
const cp437 = " ☺☻♥♦♣♠•◘○◙♂♀♪♫☼" +
	"►◄↕‼¶§▬↨↑↓→←∟↔▲▼" +
	" !\"#$%&'()*+,-./" +
	"0123456789:;<=>?" +
	"@ABCDEFGHIJKLMNO" +
	"PQRSTUVWXYZ[\\]^_" +
	"`abcdefghijklmno" +
	"pqrstuvwxyz{|}~⌂" +
	"ÇüéâäàåçêëèïîìÄÅ" +
	"ÉæÆôöòûùÿÖÜ¢£¥₧ƒ" +
	"áíóúñÑªº¿⌐¬½¼¡«»" +
	"░▒▓│┤╡╢╖╕╣║╗╝╜╛┐" +
	"└┴┬├─┼╞╟╚╔╩╦╠═╬╧" +
	"╨╤╥╙╘╒╓╫╪┘┌█▄▌▐▀" +
	"αßΓπΣσµτΦΘΩδ∞φε∩" +
	"≡±≥≤⌠⌡÷≈°∙·√ⁿ²■ "

// cp437Table indexes the code page by glyph byte.
var cp437Table = func() (t [256]rune) {
	i := 0
	for _, r := range cp437 {
		t[i] = r
		i++
	}
	return t
}()

// asciiTable is the plain fallback for terminals without the box-drawing
// glyphs: printable ASCII passes through, everything else shows as a dot,
// except NUL which stays blank so an untouched grid renders empty.
var asciiTable = func() (t [256]rune) {
	for i := range t {
		switch {
		case i == 0:
			t[i] = ' '
		case i >= 0x20 && i <= 0x7e:
			t[i] = rune(i)
		default:
			t[i] = '.'
		}
	}
	return t
}()

// TableFor returns the display table for a configured charset name.
// Unknown names fall back to CP437.
func TableFor(charset string) *[256]rune {
	if charset == config.CharsetASCII {
		return &asciiTable
	}
	return &cp437Table
}
