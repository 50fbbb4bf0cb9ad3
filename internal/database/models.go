package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/meadbax/hub/internal/command"
)

var (
	// ErrNotFound is returned when a row id does not exist
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousID is returned when an id prefix matches more than one row
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

// Note and Event are the interpreter's types; the store persists them as is
type (
	Note  = command.Note
	Event = command.Event
)

// TaskKind separates today's tasks from longer-running goals
type TaskKind string

const (
	KindTask TaskKind = "task"
	KindGoal TaskKind = "goal"
)

// Valid reports whether k is a known kind
func (k TaskKind) Valid() bool {
	return k == KindTask || k == KindGoal
}

// Task is a to-do item or a goal
type Task struct {
	ID          string     `json:"id"`
	Kind        TaskKind   `json:"kind"`
	Text        string     `json:"text"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// EventRange limits ListEvents to [From, To], both YYYY-MM-DD and inclusive.
// Empty bounds are open.
type EventRange struct {
	From  string
	To    string
	Limit int
}

// TaskListOptions filters ListTasks
type TaskListOptions struct {
	Kind        *TaskKind
	IncludeDone bool
}

// NullTime is a helper to convert *time.Time to sql.NullTime
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// TimePtr converts sql.NullTime to *time.Time
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}
