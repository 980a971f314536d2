package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/cli"
	mcpAdapter "github.com/aretw0/espalier/pkg/adapters/mcp"
	"github.com/aretw0/espalier/pkg/lexer"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long:  `Exposes tokenization and pattern probing as MCP tools, so agent hosts can drive the lexer over stdin/stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		patternsPath, _ := cmd.Flags().GetString("patterns")

		source, err := cli.ResolveSource(patternsPath)
		if err != nil {
			fmt.Printf("Error loading patterns: %v\n", err)
			os.Exit(1)
		}

		patterns, err := espalier.Patterns(source)
		if err != nil {
			fmt.Printf("Error loading patterns: %v\n", err)
			os.Exit(1)
		}

		lex, err := lexer.New(patterns)
		if err != nil {
			fmt.Printf("Error initializing lexer: %v\n", err)
			os.Exit(1)
		}

		server := mcpAdapter.NewServer(source, lex)
		if err := server.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
