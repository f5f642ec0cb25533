package main

import (
	"github.com/philipparndt/goglb/pkg/report"
	"github.com/spf13/cobra"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes [file]",
	Short: "List node transforms",
	Args:  cobra.ExactArgs(1),
	RunE:  runNodes,
}

func init() {
	rootCmd.AddCommand(nodesCmd)
}

func runNodes(cmd *cobra.Command, args []string) error {
	r, err := loadReport(args[0])
	if err != nil {
		return err
	}

	report.WriteNodes(cmd.OutOrStdout(), r.Nodes)
	return nil
}
