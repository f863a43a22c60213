package assistant

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/lectio/kit"
)

// RegisterMCP registers the assistant's command surface on an MCP server.
func (e *Engine) RegisterMCP(srv *mcp.Server) {
	e.registerCommandTool(srv)
	e.registerJumpTool(srv)
}

type commandReq struct {
	Conversation string `json:"conversation"`
	Utterance    string `json:"utterance"`
}

func (e *Engine) registerCommandTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "voice_command",
		Description: "Apply one transcribed voice utterance to a reading conversation and get the spoken reply.",
		InputSchema: kit.InputSchema(map[string]any{
			"conversation": map[string]any{"type": "string", "description": "Conversation identifier, one per listener"},
			"utterance":    map[string]any{"type": "string", "description": "Transcribed utterance"},
		}, []string{"conversation", "utterance"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*commandReq)
		return e.Apply(ctx, r.Conversation, r.Utterance), nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r commandReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{
			Request: &r,
			EnrichCtx: func(ctx context.Context) context.Context {
				return kit.WithSessionID(ctx, r.Conversation)
			},
		}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

type jumpReq struct {
	Conversation string `json:"conversation"`
	Keyword      string `json:"keyword"`
}

func (e *Engine) registerJumpTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "jump_to_chapter",
		Description: "Jump the conversation's reading position to the first chapter heading containing the keyword.",
		InputSchema: kit.InputSchema(map[string]any{
			"conversation": map[string]any{"type": "string", "description": "Conversation identifier"},
			"keyword":      map[string]any{"type": "string", "description": "Chapter keyword, e.g. 'chapter 2'"},
		}, []string{"conversation", "keyword"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*jumpReq)
		return e.JumpToChapter(ctx, r.Conversation, r.Keyword), nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r jumpReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
