package xml

import (
	"unicode/utf8"
)

var (
	escQuot = "&#34;"
	escAmp  = "&amp;"
	escLT   = "&lt;"
	escGT   = "&gt;"
	escTab  = "&#x9;"
	escNL   = "&#xA;"
	escCR   = "&#xD;"
	escFFFD = "\uFFFD" // Unicode replacement character
)

// escapeText writes the XML character data form of s. Characters outside the
// XML character range are replaced with U+FFFD.
func (e *Encoder) escapeText(s string) {
	e.escape(s, false)
}

// escapeAttr writes s for use inside a double quoted attribute value.
func (e *Encoder) escapeAttr(s string) {
	e.escape(s, true)
}

func (e *Encoder) escape(s string, attr bool) {
	var esc string
	last := 0
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		i += width
		switch r {
		case '"':
			if !attr {
				continue
			}
			esc = escQuot
		case '&':
			esc = escAmp
		case '<':
			esc = escLT
		case '>':
			esc = escGT
		case '\t':
			if !attr {
				continue
			}
			esc = escTab
		case '\n':
			if !attr {
				continue
			}
			esc = escNL
		case '\r':
			esc = escCR
		default:
			if !isInCharacterRange(r) || (r == utf8.RuneError && width == 1) {
				esc = escFFFD
				break
			}
			continue
		}
		e.writeString(s[last : i-width])
		e.writeString(esc)
		last = i
	}
	e.writeString(s[last:])
}

// isInCharacterRange reports whether r is in the XML Char production.
func isInCharacterRange(r rune) (inrange bool) {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
