package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/cairo-panic/felt"
	"github.com/wippyai/cairo-panic/report"
)

func newFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format [felt...]",
		Short: "Format a panic payload",
		Long: `Formats the given field elements as a panic message.

Felts are 0x-prefixed hex or decimal, separated by whitespace or commas.
With no arguments, or a single "-", they are read from stdin.`,
		Example: `  panicfmt format 0x68656c6c6f
  echo "0x1, 0x2" | panicfmt format
  panicfmt format --json 0x1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			felts, err := readFelts(cmd, args)
			if err != nil {
				return err
			}
			a.logger.Debug("formatting payload", zap.Int("felts", len(felts)))
			return a.emit(cmd.OutOrStdout(), report.Panicked(felts))
		},
	}
}

func readFelts(cmd *cobra.Command, args []string) ([]felt.Felt, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return felt.ParseList(string(data))
	}
	return felt.ParseList(strings.Join(args, " "))
}
