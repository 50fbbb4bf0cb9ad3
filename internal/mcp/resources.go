package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meadbax/hub/internal/database"
)

// Resource URIs
const (
	todayURI = "hub://today"
	notesURI = "hub://notes"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(todayURI, "Today",
		mcp.WithResourceDescription("Today's events and the open tasks and goals"),
		mcp.WithMIMEType("text/plain"),
	), s.readToday)

	s.mcp.AddResource(mcp.NewResource(notesURI, "Recent Notes",
		mcp.WithResourceDescription("The ten most recent notes"),
		mcp.WithMIMEType("text/plain"),
	), s.readNotes)
}

func (s *Server) readToday(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	today := s.now().In(s.location()).Format("2006-01-02")

	events, err := s.db.ListEvents(ctx, database.EventRange{From: today, To: today})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	tasks, goals, err := s.db.OpenTaskTexts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Today: %s\n\nEvents:\n", today)
	if len(events) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range events {
		when := "all day"
		if !e.AllDay() {
			when = e.Time
		}
		fmt.Fprintf(&b, "  - %s  %s\n", when, e.Title)
	}
	writeList(&b, "Tasks", tasks)
	writeList(&b, "Goals", goals)

	return textContents(req.Params.URI, b.String()), nil
}

func (s *Server) readNotes(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	notes, err := s.db.ListNotes(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var b strings.Builder
	if len(notes) == 0 {
		b.WriteString("No notes yet.\n")
	}
	for _, n := range notes {
		fmt.Fprintf(&b, "- [%s] %s\n", n.CreatedAt.In(s.location()).Format("Jan 2 15:04"), n.Body)
	}

	return textContents(req.Params.URI, b.String()), nil
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	if len(items) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

func textContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		},
	}
}
