package runtime

import (
	stderrors "errors"

	"github.com/wippyai/cairo-panic/felt"
	"github.com/wippyai/cairo-panic/panicfmt"
)

// PanicError is returned by Run when the guest reported a panic.
type PanicError struct {
	Function string
	Data     []felt.Felt
}

// Error returns the formatted panic message.
func (e *PanicError) Error() string {
	return panicfmt.Message(e.Data)
}

// Items splits the payload into display items.
func (e *PanicError) Items() []panicfmt.Item {
	return panicfmt.Items(e.Data)
}

// AsPanic reports whether err carries a guest panic.
func AsPanic(err error) (*PanicError, bool) {
	var pe *PanicError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
