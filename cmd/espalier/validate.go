package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check pattern tables for determinism",
	Long: `Eagerly scans every pattern for (state, symbol) keys with more than one
destination. The engine itself only fails when an ambiguous key is actually
looked up; this command catches NFA tables before they reach production.`,
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

		failed := false
		for _, p := range patterns {
			ambiguities := automaton.Ambiguities(p.Rules)
			if len(ambiguities) == 0 {
				fmt.Printf("✓ %s (%d rules, %d accepting)\n", p.Name, len(p.Rules), len(p.Accept))
				continue
			}

			failed = true
			fmt.Printf("✗ %s\n", p.Name)
			for _, a := range ambiguities {
				fmt.Printf("    %v\n", a.Error())
			}
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
