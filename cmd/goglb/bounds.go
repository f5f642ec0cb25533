package main

import (
	"github.com/philipparndt/goglb/pkg/report"
	"github.com/spf13/cobra"
)

var boundsCmd = &cobra.Command{
	Use:   "bounds [file]",
	Short: "Show the global bounds of all mesh positions",
	Long: `Fold the min/max extents declared on every POSITION accessor into one
axis-aligned box. When no accessor declares both, the box is reported with
infinite sentinels.`,
	Args: cobra.ExactArgs(1),
	RunE: runBounds,
}

func init() {
	rootCmd.AddCommand(boundsCmd)
}

func runBounds(cmd *cobra.Command, args []string) error {
	r, err := loadReport(args[0])
	if err != nil {
		return err
	}

	report.WriteBounds(cmd.OutOrStdout(), r)
	return nil
}
