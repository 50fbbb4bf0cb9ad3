// Package command turns a free-text utterance from the hub's command box into
// a note, a calendar event, or a help reply.
package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/meadbax/hub/internal/datetime"
)

// Action is the classification of an utterance
type Action string

const (
	ActionAddNote      Action = "add-note"
	ActionAddEvent     Action = "add-event"
	ActionUnrecognized Action = "unrecognized"
)

// Replies shown to the user
const (
	ClarifyReply = `I couldn't find a date in that. Try something like "schedule meeting on Jan 5 at 3pm" or "calendar 2/7".`
	HelpReply    = `Try "add note buy milk" to save a note, or "schedule meeting on 2/7 at 3pm" to add a calendar event.`
)

var (
	addNoteRe    = regexp.MustCompile(`(?i)add note`)
	eventWordsRe = regexp.MustCompile(`(?i)calendar|schedule|meeting`)
)

// Note is a free-text note created from a command
type Note struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is a calendar entry created from a command. An empty Time means an
// all-day event.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AllDay reports whether the event has no time of day
func (e *Event) AllDay() bool {
	return e.Time == ""
}

// Result is the outcome of interpreting one utterance. For ActionAddEvent a
// nil Event means the date could not be found and Reply asks for one.
type Result struct {
	Action Action `json:"action"`
	Note   *Note  `json:"note,omitempty"`
	Event  *Event `json:"event,omitempty"`
	Reply  string `json:"reply"`
}

// Created reports whether the result carries something to store
func (r *Result) Created() bool {
	return r.Note != nil || r.Event != nil
}

// Store persists what the interpreter creates
type Store interface {
	AddNote(ctx context.Context, n *Note) error
	AddEvent(ctx context.Context, e *Event) error
}

// Interpret classifies text. The first matching rule wins:
//  1. "add note" anywhere, or a leading "note " -> add-note
//  2. "calendar", "schedule" or "meeting" -> add-event (needs a date)
//  3. anything else -> unrecognized
func Interpret(text string, now time.Time) *Result {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if strings.Contains(lower, "add note") || strings.HasPrefix(lower, "note ") {
		return &Result{
			Action: ActionAddNote,
			Note:   &Note{Body: noteBody(trimmed), CreatedAt: now},
			Reply:  "Note added.",
		}
	}

	if eventWordsRe.MatchString(trimmed) {
		parsed, ok := datetime.Extract(trimmed, now)
		if !ok {
			return &Result{Action: ActionAddEvent, Reply: ClarifyReply}
		}

		event := &Event{
			Title:     trimmed,
			Date:      parsed.ISODate,
			Time:      parsed.Time,
			CreatedAt: now,
		}
		return &Result{
			Action: ActionAddEvent,
			Event:  event,
			Reply:  eventReply(event),
		}
	}

	return &Result{Action: ActionUnrecognized, Reply: HelpReply}
}

// Apply interprets text and stores whatever it creates
func Apply(ctx context.Context, store Store, text string, now time.Time) (*Result, error) {
	result := Interpret(text, now)

	switch {
	case result.Note != nil:
		if err := store.AddNote(ctx, result.Note); err != nil {
			return nil, fmt.Errorf("failed to save note: %w", err)
		}
	case result.Event != nil:
		if err := store.AddEvent(ctx, result.Event); err != nil {
			return nil, fmt.Errorf("failed to save event: %w", err)
		}
	}

	return result, nil
}

// noteBody strips the first "add note" and any separator after it
func noteBody(text string) string {
	body := text
	if loc := addNoteRe.FindStringIndex(text); loc != nil {
		body = text[:loc[0]] + text[loc[1]:]
	}

	body = strings.TrimSpace(body)
	body = strings.TrimSpace(strings.TrimLeft(body, ":-"))
	if body == "" {
		return text
	}
	return body
}

func eventReply(e *Event) string {
	if e.AllDay() {
		return fmt.Sprintf("Added to calendar on %s (all day).", e.Date)
	}
	return fmt.Sprintf("Added to calendar on %s at %s.", e.Date, e.Time)
}
