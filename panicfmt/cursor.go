package panicfmt

import (
	"go.uber.org/zap"

	"github.com/wippyai/cairo-panic/felt"
)

// Cursor walks a panic payload one item at a time.
// It reads the payload in place and never modifies it.
type Cursor struct {
	felts []felt.Felt
	pos   int
}

// NewCursor returns a cursor positioned at the first element of felts.
func NewCursor(felts []felt.Felt) *Cursor {
	return &Cursor{felts: felts}
}

// Pos returns the index of the next unread element.
func (c *Cursor) Pos() int {
	return c.pos
}

// Done reports whether every element has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.felts)
}

// Next yields the item starting at the cursor and advances past it.
// It returns false once the payload is exhausted.
//
// A byte array marker followed by a valid encoding yields one text item and
// advances past the whole encoding. A marker with a malformed encoding yields
// the marker alone as a plain item; the elements after it are left for the
// following calls. Every call that returns true advances by at least one.
func (c *Cursor) Next() (Item, bool) {
	if c.Done() {
		return Item{}, false
	}

	candidate := c.felts[c.pos]
	if candidate == ByteArrayMagic {
		payload, consumed, err := DecodeByteArray(c.felts[c.pos:])
		if err == nil {
			c.pos += consumed
			return TextItem(payload), true
		}
		if ce := Logger().Check(zap.DebugLevel, "byte array rejected"); ce != nil {
			ce.Write(zap.Int("pos", c.pos), zap.Error(err))
		}
	}

	c.pos++
	return PlainItem(candidate), true
}
