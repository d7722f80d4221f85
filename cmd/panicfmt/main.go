package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/cairo-panic/config"
	"github.com/wippyai/cairo-panic/panicfmt"
	"github.com/wippyai/cairo-panic/runtime"
)

type options struct {
	configPath string
	color      string
	verbose    bool
	json       bool
}

// app carries state shared by all subcommands of one invocation.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	// stdoutIsTerminal decides auto color and whether the TUI may start.
	stdoutIsTerminal func() bool

	opts options
}

func newApp() *app {
	return &app{
		logger: zap.NewNop(),
		stdoutIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// exitError reports a non-zero exit status after the result was printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(newApp()).ExecuteContext(ctx)
	if err == nil {
		return
	}

	var exit *exitError
	if stderrors.As(err, &exit) {
		stop()
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	stop()
	os.Exit(1)
}

func newRootCmd(a *app) *cobra.Command {
	var interactive bool

	root := &cobra.Command{
		Use:   "panicfmt",
		Short: "Render VM panic payloads as readable messages",
		Long: `panicfmt turns the field elements carried by a VM panic into a message
such as:

  Panicked with (0x1, "short, but string", 0x68656c6c6f ('hello')).

Payloads are read from the command line or stdin (format), captured from a
WebAssembly guest (run), or typed into a live preview (interactive).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return a.runInteractive(cmd)
			}
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", config.DefaultPath, "path to the YAML config file")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.opts.json, "json", false, "print the JSON result envelope")
	flags.StringVar(&a.opts.color, "color", "", "color output: auto, always or never")
	root.Flags().BoolVarP(&interactive, "interactive", "i", false, "start the interactive formatter")

	root.AddCommand(newFormatCmd(a), newRunCmd(a), newInteractiveCmd(a), newConfigCmd(a))
	return root
}

// setup loads the config, applies global flags and installs the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.opts.json {
		cfg.Output.JSON = true
	}
	if a.opts.color != "" {
		cfg.Output.Color = a.opts.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Logging.BuildLogger(a.opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	panicfmt.SetLogger(logger.Named("panicfmt"))
	runtime.SetLogger(logger.Named("runtime"))

	logger.Debug("configuration loaded",
		zap.String("config", a.opts.configPath),
		zap.Bool("json", cfg.Output.JSON),
		zap.String("color", cfg.Output.Color))
	return nil
}

func (a *app) colorEnabled() bool {
	switch a.cfg.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return a.stdoutIsTerminal()
	}
}
