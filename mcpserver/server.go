// ABOUTME: MCP stdio server exposing read-only collection tools to local assistant clients.
// ABOUTME: Serves one session over stdin/stdout from a snapshot loaded at startup; no mutation tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/binder/collection"
)

// SearchArgs are the arguments for the search_cards tool.
type SearchArgs struct {
	Query string `json:"query" jsonschema:"substring matched case-insensitively against all text columns; empty returns every record"`
}

// GetCardArgs are the arguments for the get_card tool.
type GetCardArgs struct {
	Index int `json:"index" jsonschema:"zero-based row position in the collection"`
}

// StatsArgs are the arguments for the collection_stats tool. Empty fields do
// not filter.
type StatsArgs struct {
	Color      string `json:"color,omitempty" jsonschema:"exact color value to filter by"`
	Rarity     string `json:"rarity,omitempty" jsonschema:"exact rarity value to filter by"`
	Kind       string `json:"kind,omitempty" jsonschema:"exact kind value to filter by"`
	AltArtOnly bool   `json:"alt_art_only,omitempty" jsonschema:"count only alternate-art records"`
}

// Server exposes one collection snapshot through MCP tools. The snapshot is
// never mutated; edits happen in the terminal app and need a restart here.
type Server struct {
	table *collection.Table
	file  string
	mcp   *mcp.Server
}

// New builds the MCP server and registers the three read-only tools.
func New(tbl *collection.Table, file, version string) *Server {
	s := &Server{table: tbl, file: file}

	srv := mcp.NewServer(&mcp.Implementation{Name: "binder", Version: version}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_cards",
		Description: "Search the card collection; returns matching records with their row positions as JSON.",
	}, s.searchCards)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_card",
		Description: "Fetch one collection record by its row position.",
	}, s.getCard)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "collection_stats",
		Description: "Aggregate collection statistics, optionally filtered by color, rarity, kind, or alt art.",
	}, s.collectionStats)

	s.mcp = srv
	return s
}

// Run serves one MCP session over stdio and blocks until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Printf("component=mcp action=serve file=%s records=%d", s.file, s.table.Len())
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) searchCards(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	view := s.table.Search(args.Query)
	return jsonResult(view)
}

func (s *Server) getCard(ctx context.Context, req *mcp.CallToolRequest, args GetCardArgs) (*mcp.CallToolResult, any, error) {
	c, err := s.table.Get(args.Index)
	if err != nil {
		return textResult(err.Error(), true), nil, nil
	}
	return jsonResult(collection.Entry{Index: args.Index, Card: c})
}

func (s *Server) collectionStats(ctx context.Context, req *mcp.CallToolRequest, args StatsArgs) (*mcp.CallToolResult, any, error) {
	filter := collection.StatsFilter{
		Color:      args.Color,
		Rarity:     args.Rarity,
		Kind:       args.Kind,
		AltArtOnly: args.AltArtOnly,
	}
	return jsonResult(collection.ComputeStats(s.table.Records(), filter))
}

// jsonResult marshals v indented and wraps it as tool text content.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return textResult(string(data), false), nil, nil
}

func textResult(text string, isErr bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isErr,
	}
}
