package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <pattern>",
	Short: "Export a pattern's automaton visualization",
	Long:  `Outputs a Mermaid diagram (graph LR) of the pattern's transition table, with accepting states highlighted.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		patternsPath, _ := cmd.Flags().GetString("patterns")

		source, err := cli.ResolveSource(patternsPath)
		if err != nil {
			fmt.Printf("Error loading patterns: %v\n", err)
			os.Exit(1)
		}

		p, err := source.GetPattern(args[0])
		if err != nil {
			fmt.Printf("Error loading pattern %q: %v\n", args[0], err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(p, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
