// Package cli implements the leadscout command line tool.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRoot().ExecuteContext(ctx)
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "leadscout",
		Short:         "Lead scoring and sales assistance for solar leads",
		SilenceUsage: true,
	}
	root.AddCommand(
		SeedCmd(),
		ScoreCmd(),
		AnalyzeCmd(),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
