// Command batchqlctl is a small demo driver: it wires a
// batchbuffer.Buffer to a toy multi-producer pipeline and streams the
// chunks it produces to stdout, the way cmd/octosql/main.go drives a
// materialized physical plan's execution.Node to completion. Passing
// --visualize instead runs the delim-join planner on a canned logical
// join and prints its plan as Graphviz DOT, the way cmd/sqlviz does
// for a query's logical/physical plan.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/batchql/batchql/config"
)

var (
	configPath string
	visualize  bool
	batchCount int
	chunkSize  int
)

var rootCmd = &cobra.Command{
	Use:   "batchqlctl",
	Short: "Drive a demo batched-buffer pipeline or visualize a delim-join plan.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if visualize {
			return runVisualize(cmd.OutOrStdout())
		}
		return runDemo(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a yaml config file (currentBatchBufferSize/otherBatchesBufferSize under execution)")
	rootCmd.Flags().BoolVar(&visualize, "visualize", false, "print a canned delim-join plan as Graphviz DOT instead of running the demo pipeline")
	rootCmd.Flags().IntVar(&batchCount, "batches", 4, "number of batches the demo pipeline produces")
	rootCmd.Flags().IntVar(&chunkSize, "chunk-size", 8, "tuples per chunk the demo pipeline appends")
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return nil, nil
	}
	return config.ReadConfig(configPath)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
