package panicfmt

import (
	"strings"

	"github.com/wippyai/cairo-panic/felt"
)

// NullMessage is reported for a panic that carries no data.
const NullMessage = "Null"

// Items splits a payload into its items, in order.
func Items(felts []felt.Felt) []Item {
	c := NewCursor(felts)
	items := make([]Item, 0, len(felts))
	for {
		item, ok := c.Next()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

// FormatItems joins rendered items into "Panicked with <body>.". A single
// item is the body itself; several are wrapped as (a, b, ...).
func FormatItems(items []Item) string {
	var b strings.Builder
	b.WriteString("Panicked with ")
	if len(items) == 1 {
		b.WriteString(items[0].String())
	} else {
		b.WriteByte('(')
		for i, item := range items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(item.String())
		}
		b.WriteByte(')')
	}
	b.WriteByte('.')
	return b.String()
}

// Format renders a non-empty payload. Callers with possibly empty payloads
// use Message.
func Format(felts []felt.Felt) string {
	return FormatItems(Items(felts))
}

// Message renders a panic payload for display, reporting NullMessage when the
// payload is empty.
func Message(felts []felt.Felt) string {
	if len(felts) == 0 {
		return NullMessage
	}
	return Format(felts)
}
