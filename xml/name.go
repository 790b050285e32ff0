package xml

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// EncodeLocalName returns name with every character that is not allowed in
// an XML local name replaced by its _xHHHH_ escape. Characters outside the
// basic multilingual plane use the eight digit _xHHHHHHHH_ form. An
// underscore that would otherwise start an escape sequence is itself escaped.
func EncodeLocalName(name string) string {
	if isLocalName(name) && !strings.Contains(name, "_x") {
		return name
	}

	var b strings.Builder
	b.Grow(len(name) + 8)

	first := true
	for i := 0; i < len(name); {
		r, width := utf8.DecodeRuneInString(name[i:])

		switch {
		case r == '_' && hasEscapeAt(name, i):
			writeRuneEscape(&b, r)
		case r == ':':
			writeRuneEscape(&b, r)
		case first && isNameStartChar(r):
			b.WriteRune(r)
		case !first && isNameChar(r):
			b.WriteRune(r)
		default:
			writeRuneEscape(&b, r)
		}

		first = false
		i += width
	}

	return b.String()
}

func isLocalName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i, r := range name {
		if r == ':' {
			return false
		}
		if i == 0 && !isNameStartChar(r) || !isNameChar(r) {
			return false
		}
	}
	return true
}

// hasEscapeAt reports whether name[i:] starts with _xHHHH_ or _xHHHHHHHH_.
func hasEscapeAt(name string, i int) bool {
	rest := name[i:]
	if len(rest) < 7 || rest[1] != 'x' {
		return false
	}
	for _, n := range []int{4, 8} {
		if len(rest) < n+3 || rest[n+2] != '_' {
			continue
		}
		if isHex(rest[2 : n+2]) {
			return true
		}
	}
	return false
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func writeRuneEscape(b *strings.Builder, r rune) {
	digits := 4
	if r > 0xFFFF {
		digits = 8
	}

	b.WriteString("_x")
	for shift := (digits - 1) * 4; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(r>>shift)&0xF])
	}
	b.WriteByte('_')
}

func isNameStartChar(r rune) bool {
	return r == '_' ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 0xC0 && r <= 0xD6) ||
		(r >= 0xD8 && r <= 0xF6) ||
		(r >= 0xF8 && r <= 0x2FF) ||
		(r >= 0x370 && r <= 0x37D) ||
		(r >= 0x37F && r <= 0x1FFF) ||
		(r >= 0x200C && r <= 0x200D) ||
		(r >= 0x2070 && r <= 0x218F) ||
		(r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) ||
		(r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0xEFFFF)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) ||
		r == '-' || r == '.' ||
		(r >= '0' && r <= '9') ||
		r == 0xB7 ||
		(r >= 0x0300 && r <= 0x036F) ||
		(r >= 0x203F && r <= 0x2040)
}
