package library

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/lectio/kit"
)

// RegisterMCP registers library tools on an MCP server.
func (l *Library) RegisterMCP(srv *mcp.Server) {
	l.registerScanTool(srv)
	l.registerFindTool(srv)
}

func (l *Library) registerScanTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "library_scan",
		Description: "List readable documents in the configured library directories, numbered for voice selection.",
		InputSchema: kit.InputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		return map[string]any{"files": l.Scan()}, nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

type findReq struct {
	Name   string `json:"name,omitempty"`
	Number *int   `json:"number,omitempty"` // 1-based spoken number
}

func (l *Library) registerFindTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "library_find",
		Description: "Resolve a spoken file name or number to a library document.",
		InputSchema: kit.InputSchema(map[string]any{
			"name":   map[string]any{"type": "string", "description": "Spoken file name"},
			"number": map[string]any{"type": "integer", "description": "1-based file number from the listing"},
		}, nil),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*findReq)
		if r.Number != nil {
			return l.ByNumber(*r.Number - 1)
		}
		return l.ByName(r.Name)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r findReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
