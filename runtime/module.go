package runtime

import (
	"context"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/cairo-panic/errors"
)

// Module is a compiled guest. Each Run uses a fresh instance, so a Module
// is safe for concurrent use.
type Module struct {
	runtime  *Runtime
	compiled wazero.CompiledModule
}

// Result holds the raw return values of a guest call that did not panic.
type Result struct {
	Values []uint64
}

// Exports lists the functions the guest exports.
func (m *Module) Exports() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	return names
}

// Run instantiates the guest and calls entry.
//
// A guest that reported a panic yields a *PanicError carrying the payload,
// whether it trapped afterwards or returned. Any other trap is a runtime
// trap error.
func (m *Module) Run(ctx context.Context, entry string, params ...uint64) (*Result, error) {
	if m.compiled == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "module")
	}

	// anonymous for parallel instantiation
	instance, err := m.runtime.runtime.InstantiateModule(ctx, m.compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	defer func() {
		if closeErr := instance.Close(ctx); closeErr != nil {
			Logger().Warn("failed to close guest instance", zap.Error(closeErr))
		}
	}()

	fn := instance.ExportedFunction(entry)
	if fn == nil {
		exports := m.Exports()
		sort.Strings(exports)
		return nil, errors.New(errors.PhaseRuntime, errors.KindNotFound).
			Value(entry).
			Detail("export %q not found (available: %s)", entry, strings.Join(exports, ", ")).
			Build()
	}

	capture := &panicCapture{}
	Logger().Debug("calling guest", zap.String("function", entry), zap.Int("params", len(params)))
	values, callErr := fn.Call(withCapture(ctx, capture), params...)

	if capture.err != nil {
		return nil, capture.err
	}
	if capture.called {
		Logger().Info("guest panicked",
			zap.String("function", entry),
			zap.Int("felts", len(capture.data)))
		return nil, &PanicError{Function: entry, Data: capture.data}
	}
	if callErr != nil {
		return nil, errors.Trap(entry, callErr)
	}

	return &Result{Values: values}, nil
}

// Close releases the compiled module.
func (m *Module) Close(ctx context.Context) error {
	if m.compiled == nil {
		return nil
	}
	err := m.compiled.Close(ctx)
	m.compiled = nil
	return err
}
