package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/cairo-panic/report"
	"github.com/wippyai/cairo-panic/runtime"
)

type runFlags struct {
	wasm             string
	entry            string
	hostModule       string
	memoryLimitPages uint32
	interpreter      bool
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run --wasm <file>",
		Short: "Run a WebAssembly guest and report its panic",
		Long: `Runs an exported function of a core WebAssembly module. A guest reports a
panic by calling the imported function env.panic(ptr, len) with len field
elements of 32 big-endian bytes each at ptr in its exported memory.

Exit status is 0 when the call returns, 2 when the guest panicked and 1 on
any other error.`,
		Example: `  panicfmt run --wasm guest.wasm
  panicfmt run --wasm guest.wasm --func start --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("func") {
				a.cfg.Runtime.Entry = f.entry
			}
			if cmd.Flags().Changed("host-module") {
				a.cfg.Runtime.HostModule = f.hostModule
			}
			if cmd.Flags().Changed("memory-limit-pages") {
				a.cfg.Runtime.MemoryLimitPages = f.memoryLimitPages
			}
			if f.interpreter {
				a.cfg.Runtime.Interpreter = true
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.run(cmd, f.wasm)
		},
	}

	cmd.Flags().StringVar(&f.wasm, "wasm", "", "path to the guest module")
	cmd.Flags().StringVar(&f.entry, "func", "", "exported function to call (default from config)")
	cmd.Flags().StringVar(&f.hostModule, "host-module", "", "import module of the panic function (default from config)")
	cmd.Flags().Uint32Var(&f.memoryLimitPages, "memory-limit-pages", 0, "maximum guest memory in 64KiB pages")
	cmd.Flags().BoolVar(&f.interpreter, "interpreter", false, "use the interpreter instead of the compiler")
	_ = cmd.MarkFlagRequired("wasm")

	return cmd
}

func (a *app) run(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	entry := a.cfg.Runtime.Entry

	data, err := os.ReadFile(path)
	if err != nil {
		return a.fail(cmd, fmt.Errorf("read file: %w", err))
	}

	rt, err := runtime.NewWithConfig(ctx, a.cfg.RuntimeOptions())
	if err != nil {
		return a.fail(cmd, fmt.Errorf("create runtime: %w", err))
	}
	defer rt.Close(ctx)

	a.logger.Debug("running guest",
		zap.String("file", path),
		zap.String("entry", entry),
		zap.Int("size", len(data)))

	result, err := rt.Run(ctx, data, entry)
	if _, ok := runtime.AsPanic(err); err != nil && !ok {
		return a.fail(cmd, fmt.Errorf("run %s: %w", entry, err))
	}

	env := report.FromRun(result, err)
	if err := a.emit(cmd.OutOrStdout(), env); err != nil {
		return err
	}
	return statusError(env)
}

// fail reports err as an error envelope in JSON mode and returns it
// unchanged otherwise.
func (a *app) fail(cmd *cobra.Command, err error) error {
	if !a.cfg.Output.JSON {
		return err
	}
	env := report.Failure(err)
	if writeErr := env.Write(cmd.OutOrStdout()); writeErr != nil {
		return writeErr
	}
	return statusError(env)
}
