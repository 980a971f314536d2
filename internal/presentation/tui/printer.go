// Package tui renders token streams for terminal output.
package tui

import (
	"fmt"
	"hash/fnv"
	"io"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/muesli/termenv"
)

// palette cycles through distinguishable hues per category.
var palette = []string{"#818cf8", "#34d399", "#fbbf24", "#f472b6", "#60a5fa", "#c084fc", "#fb7185"}

// Printer writes tokens to a terminal, one per line, with category colors
// kept stable across the stream.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewPrinter creates a printer for the given writer. When color is false
// (e.g. output is piped), styling is disabled entirely.
func NewPrinter(out io.Writer, color bool) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	return &Printer{out: out, profile: profile}
}

// Print writes one token.
func (p *Printer) Print(tok domain.Token) {
	category := termenv.String(fmt.Sprintf("%-10s", tok.Category)).
		Foreground(p.profile.Color(colorFor(tok.Category))).
		Bold()
	fmt.Fprintf(p.out, "%s %q\n", category, tok.Lexeme)
}

// PrintAll writes a token stream followed by a summary line.
func (p *Printer) PrintAll(tokens []domain.Token) {
	for _, tok := range tokens {
		p.Print(tok)
	}
	summary := termenv.String(fmt.Sprintf("%d tokens", len(tokens))).
		Foreground(p.profile.Color("#6b7280")).
		Italic()
	fmt.Fprintf(p.out, "%s\n", summary)
}

func colorFor(category string) string {
	h := fnv.New32a()
	h.Write([]byte(category))
	return palette[h.Sum32()%uint32(len(palette))]
}
