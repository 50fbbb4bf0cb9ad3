package mcp

import "github.com/mark3labs/mcp-go/mcp"

var interpretCommandTool = mcp.NewTool("interpret_command",
	mcp.WithDescription(`Interpret a short utterance and store what it creates.
"add note buy milk" saves a note; "schedule meeting on 2/7 at 3pm" adds a calendar event.
Anything else returns a help reply and stores nothing.`),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The utterance to interpret"),
	),
	mcp.WithString("now",
		mcp.Description("Reference time in RFC 3339 used to resolve dates (default: now)"),
	),
)

var listNotesTool = mcp.NewTool("list_notes",
	mcp.WithDescription("List saved notes, newest first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of notes to return (default: 20)"),
	),
)

var listEventsTool = mcp.NewTool("list_events",
	mcp.WithDescription("List calendar events in date order. Events without a time are all-day."),
	mcp.WithString("from",
		mcp.Description("First day to include, YYYY-MM-DD (default: today)"),
	),
	mcp.WithString("to",
		mcp.Description("Last day to include, YYYY-MM-DD (default: no limit)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of events to return (default: 50)"),
	),
)

var listTasksTool = mcp.NewTool("list_tasks",
	mcp.WithDescription("List tasks and goals."),
	mcp.WithString("kind",
		mcp.Description("Filter by kind: task, goal or all (default: all)"),
		mcp.Enum("task", "goal", "all"),
	),
	mcp.WithBoolean("include_done",
		mcp.Description("Include completed items (default: false)"),
	),
)

var dailySuggestionTool = mcp.NewTool("daily_suggestion",
	mcp.WithDescription("Suggest what to do today from the open tasks and goals, the time of day and optional weather."),
	mcp.WithString("weather",
		mcp.Description(`Current weather as free text, e.g. "Light rain, 12°C"`),
	),
)
