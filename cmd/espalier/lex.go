package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// lexCmd represents the lex command
var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a file or stdin",
	Long:  `Runs the longest-match lexer over the input and prints one token per line. Reads from stdin when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		patternsPath, _ := cmd.Flags().GetString("patterns")
		level, _ := cmd.Flags().GetString("log-level")
		asJSON, _ := cmd.Flags().GetBool("json")

		logger := logging.New(logging.ParseLevel(level))

		source, err := cli.ResolveSource(patternsPath)
		if err != nil {
			fmt.Printf("Error loading patterns: %v\n", err)
			os.Exit(1)
		}

		lex, err := espalier.New("", espalier.WithSource(source), espalier.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error initializing lexer: %v\n", err)
			os.Exit(1)
		}

		input, err := readInput(args)
		if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			os.Exit(1)
		}

		tokens, err := lex.Scan(cmd.Context(), input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if asJSON {
			if err := json.NewEncoder(os.Stdout).Encode(tokens); err != nil {
				fmt.Printf("Error encoding tokens: %v\n", err)
				os.Exit(1)
			}
			return
		}

		color := term.IsTerminal(int(os.Stdout.Fd()))
		tui.NewPrinter(os.Stdout, color).PrintAll(tokens)
	},
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().Bool("json", false, "Emit tokens as JSON")
}
