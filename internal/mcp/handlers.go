package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meadbax/hub/internal/command"
	"github.com/meadbax/hub/internal/database"
	"github.com/meadbax/hub/internal/suggest"
)

func (s *Server) registerHandlers() {
	s.mcp.AddTool(interpretCommandTool, s.handleInterpretCommand)
	s.mcp.AddTool(listNotesTool, s.handleListNotes)
	s.mcp.AddTool(listEventsTool, s.handleListEvents)
	s.mcp.AddTool(listTasksTool, s.handleListTasks)
	s.mcp.AddTool(dailySuggestionTool, s.handleDailySuggestion)
}

func (s *Server) handleInterpretCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required and must be a string"), nil
	}

	now := s.now().In(s.location())
	if raw := stringArg(req, "now"); raw != "" {
		now, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("now must be RFC 3339: %v", err)), nil
		}
	}

	result, err := command.Apply(ctx, s.db, text, now)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	return jsonResult(result)
}

func (s *Server) handleListNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.db.ListNotes(ctx, intArg(req, "limit", 20))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText("No notes yet."), nil
	}
	return jsonResult(notes)
}

func (s *Server) handleListEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := database.EventRange{
		From:  stringArg(req, "from"),
		To:    stringArg(req, "to"),
		Limit: intArg(req, "limit", 50),
	}
	if r.From == "" {
		r.From = s.now().In(s.location()).Format("2006-01-02")
	}
	for _, d := range []string{r.From, r.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", d)), nil
		}
	}

	events, err := s.db.ListEvents(ctx, r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	if len(events) == 0 {
		return mcp.NewToolResultText("No events in that range."), nil
	}
	return jsonResult(events)
}

func (s *Server) handleListTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := database.TaskListOptions{}
	if v, ok := req.GetArguments()["include_done"].(bool); ok {
		opts.IncludeDone = v
	}

	switch kind := database.TaskKind(stringArg(req, "kind")); {
	case kind == "" || kind == "all":
	case kind.Valid():
		opts.Kind = &kind
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q", kind)), nil
	}

	tasks, err := s.db.ListTasks(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	if len(tasks) == 0 {
		return mcp.NewToolResultText("No tasks or goals."), nil
	}
	return jsonResult(tasks)
}

func (s *Server) handleDailySuggestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, goals, err := s.db.OpenTaskTexts(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}

	sc := suggest.NewContext(s.now().In(s.location()), tasks, goals, stringArg(req, "weather"))
	return jsonResult(s.generator.Suggest(ctx, sc))
}

func stringArg(req mcp.CallToolRequest, key string) string {
	v, _ := req.GetArguments()[key].(string)
	return v
}

// intArg reads a JSON number; non-positive values mean def
func intArg(req mcp.CallToolRequest, key string, def int) int {
	if v, ok := req.GetArguments()[key].(float64); ok && v > 0 {
		return int(v)
	}
	return def
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
