package panicfmt

import "strings"

const hexDigits = "0123456789abcdef"

// EscapeBytes renders a decoded byte array for display between double quotes.
//
// Bytes are handled one at a time: a newline stays literal, NUL becomes \0,
// printable ASCII other than '"' and '\' stays literal, and every other byte
// becomes \xHH. No UTF-8 decoding takes place.
func EscapeBytes(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		switch {
		case c == '\n':
			sb.WriteByte('\n')
		case c == 0:
			sb.WriteString(`\0`)
		case c == '"' || c == '\\':
			writeHexEscape(&sb, c)
		case isPrintable(c):
			sb.WriteByte(c)
		default:
			writeHexEscape(&sb, c)
		}
	}
	return sb.String()
}

func writeHexEscape(sb *strings.Builder, c byte) {
	sb.WriteString(`\x`)
	sb.WriteByte(hexDigits[c>>4])
	sb.WriteByte(hexDigits[c&0x0f])
}

func isPrintable(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}
