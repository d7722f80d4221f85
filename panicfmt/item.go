package panicfmt

import "github.com/wippyai/cairo-panic/felt"

// ItemKind distinguishes the two kinds of payload items.
type ItemKind uint8

const (
	ItemPlain ItemKind = iota // a single element
	ItemText                  // a decoded byte array
)

func (k ItemKind) String() string {
	switch k {
	case ItemPlain:
		return "plain"
	case ItemText:
		return "text"
	default:
		return "unknown"
	}
}

// Item is one unit of a formatted panic payload.
type Item struct {
	Text []byte // ItemText payload
	Felt felt.Felt
	Kind ItemKind
}

// PlainItem wraps a single element.
func PlainItem(f felt.Felt) Item {
	return Item{Kind: ItemPlain, Felt: f}
}

// TextItem wraps a decoded byte array payload.
func TextItem(b []byte) Item {
	return Item{Kind: ItemText, Text: b}
}

// String renders the item: plain elements via RenderFelt, text as an
// escaped double-quoted string.
func (i Item) String() string {
	if i.Kind == ItemText {
		return `"` + EscapeBytes(i.Text) + `"`
	}
	return RenderFelt(i.Felt)
}
