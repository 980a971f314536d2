// Package mcp exposes the Espalier engine as an MCP server, so agent hosts
// can tokenize input and probe patterns as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/lexer"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TokenizeResponse is the structured output of the tokenize tool.
type TokenizeResponse struct {
	Tokens []domain.Token `json:"tokens" jsonschema_description:"Tokens in input order"`
}

// MatchResponse is the structured output of the match_prefix tool.
type MatchResponse struct {
	Pattern string `json:"pattern" jsonschema_description:"Pattern that was probed"`
	Matched bool   `json:"matched" jsonschema_description:"Whether any prefix was accepted"`
	Lexeme  string `json:"lexeme" jsonschema_description:"Longest accepted prefix"`
	Length  int    `json:"length" jsonschema_description:"Length of the accepted prefix in runes"`
}

// Server wraps the lexer and pattern source as an MCP Server.
type Server struct {
	source    ports.PatternSource
	lex       *lexer.Lexer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance over the given source.
func NewServer(source ports.PatternSource, lex *lexer.Lexer) *Server {
	s := &Server{
		source:    source,
		lex:       lex,
		mcpServer: server.NewMCPServer("espalier-mcp", strings.TrimSpace(espalier.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: tokenize
	tokenizeTool := mcp.NewTool("tokenize",
		mcp.WithDescription("Tokenize input with the configured patterns using longest-match."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Text to tokenize")),
		mcp.WithOutputSchema[TokenizeResponse](),
	)
	s.mcpServer.AddTool(tokenizeTool, mcp.NewStructuredToolHandler(s.handleTokenize))

	// TOOL: match_prefix
	matchTool := mcp.NewTool("match_prefix",
		mcp.WithDescription("Find the longest prefix of input accepted by a single pattern."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Pattern name")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Text to probe")),
		mcp.WithOutputSchema[MatchResponse](),
	)
	s.mcpServer.AddTool(matchTool, mcp.NewStructuredToolHandler(s.handleMatchPrefix))

	// TOOL: list_patterns
	s.mcpServer.AddTool(mcp.NewTool("list_patterns",
		mcp.WithDescription("List the configured pattern names in priority order."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.source.ListPatterns()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleTokenize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TokenizeResponse, error) {
	input, _ := args["input"].(string)

	tokens, err := s.lex.Scan(ctx, input)
	if err != nil {
		return TokenizeResponse{}, fmt.Errorf("tokenize failed: %w", err)
	}
	if tokens == nil {
		tokens = []domain.Token{}
	}
	return TokenizeResponse{Tokens: tokens}, nil
}

// handleMatchPrefix runs the accept-then-rollback protocol on one machine.
func (s *Server) handleMatchPrefix(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MatchResponse, error) {
	name, _ := args["pattern"].(string)
	input, _ := args["input"].(string)

	p, err := s.source.GetPattern(name)
	if err != nil {
		return MatchResponse{}, fmt.Errorf("pattern %q: %w", name, err)
	}

	m := automaton.FromPattern(p)
	runes := []rune(input)

	matched := false
	length := 0
	for _, c := range runes {
		accepted, err := m.Step(c)
		if err != nil {
			return MatchResponse{}, fmt.Errorf("pattern %q: %w", name, err)
		}
		length++
		if accepted {
			matched = true
		}
		if m.Trapped() {
			break
		}
	}

	if !matched {
		return MatchResponse{Pattern: name}, nil
	}

	for !m.Accepted() {
		m.Rollback()
		length--
	}

	return MatchResponse{
		Pattern: name,
		Matched: true,
		Lexeme:  string(runes[:length]),
		Length:  length,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: espalier://patterns
	s.mcpServer.AddResource(mcp.NewResource("espalier://patterns", "Configured Pattern Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		patterns, err := espalier.Patterns(s.source)
		if err != nil {
			return nil, fmt.Errorf("failed to load patterns: %w", err)
		}
		jsonBytes, _ := json.Marshal(patterns)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "espalier://patterns",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
