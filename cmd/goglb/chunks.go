package main

import (
	"fmt"

	"github.com/philipparndt/goglb/pkg/glb"
	"github.com/philipparndt/goglb/pkg/report"
	"github.com/spf13/cobra"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks [file]",
	Short: "List the chunks of a GLB container",
	Long:  "Print the container header and the offset, type and length of every chunk. Payloads are skipped, not read.",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)
}

func runChunks(cmd *cobra.Command, args []string) error {
	filename := args[0]

	header, chunks, err := glb.ListChunks(filename, parseOptions()...)
	if err != nil && len(chunks) == 0 {
		return fmt.Errorf("%s: %s: %w", filename, glb.KindOf(err), err)
	}

	report.WriteChunks(cmd.OutOrStdout(), header, chunks)
	if err != nil {
		return fmt.Errorf("%s: stopped after %d chunks: %s: %w", filename, len(chunks), glb.KindOf(err), err)
	}
	return nil
}
