package report

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/wippyai/cairo-panic/felt"
	"github.com/wippyai/cairo-panic/panicfmt"
	"github.com/wippyai/cairo-panic/runtime"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Status is the outcome recorded in an Envelope.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusPanic   Status = "panic"
)

// Exit codes returned by Envelope.ExitCode.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitPanic   = 2
)

// Envelope is the machine-readable result of a format or run command.
type Envelope struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success wraps the return values of a guest call.
func Success(values []uint64) *Envelope {
	if values == nil {
		values = []uint64{}
	}
	return &Envelope{Status: StatusSuccess, Data: values}
}

// Panicked wraps a panic payload. Data lists the felts in hex.
func Panicked(felts []felt.Felt) *Envelope {
	data := make([]string, len(felts))
	for i, f := range felts {
		data[i] = f.Hex()
	}
	return &Envelope{
		Status:  StatusPanic,
		Message: panicfmt.Message(felts),
		Data:    data,
	}
}

// Failure wraps an error that is not a guest panic.
func Failure(err error) *Envelope {
	return &Envelope{Status: StatusError, Message: err.Error()}
}

// FromRun builds the envelope for the outcome of runtime.Runtime.Run.
func FromRun(result *runtime.Result, err error) *Envelope {
	if pe, ok := runtime.AsPanic(err); ok {
		return Panicked(pe.Data)
	}
	if err != nil {
		return Failure(err)
	}
	if result == nil {
		return Success(nil)
	}
	return Success(result.Values)
}

// Write encodes e as a single JSON line.
func (e *Envelope) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(e)
}

// ExitCode maps the status to a process exit code.
func (e *Envelope) ExitCode() int {
	switch e.Status {
	case StatusSuccess:
		return ExitSuccess
	case StatusPanic:
		return ExitPanic
	default:
		return ExitError
	}
}
