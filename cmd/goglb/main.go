package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/philipparndt/goglb/pkg/glb"
	"github.com/philipparndt/goglb/version"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	strictHeader bool
	logger       = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "goglb",
	Short: "Inspect binary glTF (GLB) files",
	Long: `goglb reads binary glTF (.glb) containers and reports node transforms
and the overall bounds of mesh geometry, taken from the min/max extents
declared on POSITION accessors.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log chunk traversal to stderr")
	rootCmd.PersistentFlags().BoolVar(&strictHeader, "strict", false, "Reject files whose header version or length is wrong")
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func parseOptions() []glb.Option {
	opts := []glb.Option{glb.WithLogger(logger)}
	if strictHeader {
		opts = append(opts, glb.WithStrictHeader())
	}
	return opts
}

// loadReport inspects filename and turns any failure into a diagnostic naming its kind.
func loadReport(filename string) (*glb.Report, error) {
	result := glb.Inspect(filename, parseOptions()...)
	if !result.OK() {
		logger.Debug("inspect failed", "file", filename, "kind", result.Kind.String(), "error", result.Err)
		return nil, fmt.Errorf("%s: %s: %w", filename, result.Kind, result.Err)
	}
	return result.Report, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
