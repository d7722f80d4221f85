package runtime

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/cairo-panic/errors"
	"github.com/wippyai/cairo-panic/felt"
)

// panicCapture records the payload reported by one guest call.
type panicCapture struct {
	err    error
	data   []felt.Felt
	called bool
}

// captureContextKey is the context key for the capture of the active call.
type captureContextKey struct{}

func withCapture(ctx context.Context, c *panicCapture) context.Context {
	return context.WithValue(ctx, captureContextKey{}, c)
}

func captureFromContext(ctx context.Context) *panicCapture {
	if c, ok := ctx.Value(captureContextKey{}).(*panicCapture); ok {
		return c
	}
	return nil
}

// handlePanic implements panic(ptr, len): len felts of felt.Size big-endian
// bytes each, starting at ptr in the caller's memory. Only the first report
// of a call is kept.
func handlePanic(ctx context.Context, caller api.Module, stack []uint64) {
	c := captureFromContext(ctx)
	if c == nil || c.called {
		return
	}
	c.called = true

	ptr := api.DecodeU32(stack[0])
	count := api.DecodeU32(stack[1])
	c.data, c.err = readPayload(caller.Memory(), ptr, count)
}

func readPayload(mem api.Memory, ptr, count uint32) ([]felt.Felt, error) {
	if mem == nil {
		return nil, errors.NotFound(errors.PhaseRuntime, "memory", MemoryExport)
	}

	size := uint64(count) * felt.Size
	end := uint64(ptr) + size
	if end > uint64(mem.Size()) {
		return nil, errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
			Path("panic").
			Value(ptr).
			Detail("payload [%d, %d) outside guest memory of %d bytes", ptr, end, mem.Size()).
			Build()
	}

	raw, ok := mem.Read(ptr, uint32(size))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseRuntime, []string{"panic"}, int(ptr), int(mem.Size()))
	}

	data := make([]felt.Felt, count)
	for i := range data {
		var b [felt.Size]byte
		copy(b[:], raw[i*felt.Size:])
		f, err := felt.FromBytes32(b)
		if err != nil {
			return nil, errors.New(errors.PhaseRuntime, errors.KindInvalidData).
				Path("panic", fmt.Sprintf("[%d]", i)).
				Cause(err).
				Detail("non-canonical field element").
				Build()
		}
		data[i] = f
	}
	return data, nil
}
