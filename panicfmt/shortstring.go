package panicfmt

import "github.com/wippyai/cairo-panic/felt"

// ShortString returns the ASCII text packed into f when every significant
// byte is printable (0x20-0x7e). The zero element is the empty short string.
func ShortString(f felt.Felt) (string, bool) {
	b := f.Stripped()
	if len(b) > felt.WordSize {
		return "", false
	}
	for _, c := range b {
		if !isPrintable(c) {
			return "", false
		}
	}
	return string(b), true
}

// RenderFelt renders a plain element as its hex form, followed by the quoted
// short string when the element is printable: 0x68656c6c6f ('hello').
func RenderFelt(f felt.Felt) string {
	if s, ok := ShortString(f); ok {
		return f.Hex() + " ('" + s + "')"
	}
	return f.Hex()
}
