package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/philipparndt/goglb/pkg/report"
	"github.com/philipparndt/goglb/pkg/watcher"
	"github.com/spf13/cobra"
)

var inspectWatch bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show node transforms and global model bounds",
	Long: `Print every node with its translation, rotation, scale and matrix, followed
by the bounds enclosing all POSITION accessors. With --watch the report is
printed again whenever the file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVarP(&inspectWatch, "watch", "w", false, "Re-inspect the file whenever it changes")
}

func runInspect(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	if !inspectWatch {
		return inspectOnce(out, filename)
	}

	if err := inspectOnce(out, filename); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(500*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	var mu sync.Mutex
	err = fw.Watch([]string{filename}, func(path string) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(out, "\n--- %s changed ---\n", path)
		if err := inspectOnce(out, filename); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", filename)
	fw.Run(ctx)
	return nil
}

func inspectOnce(out io.Writer, filename string) error {
	r, err := loadReport(filename)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "File: %s\n\n", filename)
	report.WriteReport(out, r)
	return nil
}
