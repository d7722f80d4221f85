package runtime

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/cairo-panic/errors"
)

const (
	// DefaultHostModule is the import module guests use for the panic function.
	DefaultHostModule = "env"
	// PanicFunction is the name of the host import that reports a panic.
	PanicFunction = "panic"
	// MemoryExport is the guest memory the panic payload is read from.
	MemoryExport = "memory"
)

// Config holds configuration for runtime creation
type Config struct {
	// HostModule is the import module name of the panic function.
	// Empty means DefaultHostModule.
	HostModule string

	// MemoryLimitPages sets the maximum memory per guest in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// Interpreter selects wazero's interpreter instead of the compiler.
	Interpreter bool
}

// Runtime hosts guest programs whose panics are reported as field elements.
type Runtime struct {
	runtime    wazero.Runtime
	hostModule string
}

// New creates a runtime with the default configuration.
func New(ctx context.Context) (*Runtime, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates a runtime with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Runtime, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	hostModule := DefaultHostModule

	if cfg != nil {
		if cfg.Interpreter {
			runtimeCfg = wazero.NewRuntimeConfigInterpreter()
		}
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.HostModule != "" {
			hostModule = cfg.HostModule
		}
	}

	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	_, err := rt.NewHostModuleBuilder(hostModule).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(handlePanic), []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, nil).
		WithParameterNames("ptr", "len").
		Export(PanicFunction).
		Instantiate(ctx)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "instantiate host module "+hostModule)
	}

	Logger().Debug("runtime created",
		zap.String("host_module", hostModule),
		zap.Bool("interpreter", cfg != nil && cfg.Interpreter))

	return &Runtime{
		runtime:    rt,
		hostModule: hostModule,
	}, nil
}

// HostModule returns the import module name guests must use for the panic function.
func (r *Runtime) HostModule() string {
	return r.hostModule
}

// Close releases all runtime resources.
// All modules must be closed before calling this.
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// Load compiles a core WebAssembly module.
func (r *Runtime) Load(ctx context.Context, wasm []byte) (*Module, error) {
	if len(wasm) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty module binary")
	}

	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	return &Module{
		runtime:  r,
		compiled: compiled,
	}, nil
}

// Run loads wasm, calls entry once and closes the module.
func (r *Runtime) Run(ctx context.Context, wasm []byte, entry string, params ...uint64) (*Result, error) {
	mod, err := r.Load(ctx, wasm)
	if err != nil {
		return nil, err
	}
	defer mod.Close(ctx)

	return mod.Run(ctx, entry, params...)
}
