package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AddNote inserts a note
func (db *DB) AddNote(ctx context.Context, n *Note) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO notes (id, body, created_at) VALUES (?, ?, ?)
	`, n.ID, n.Body, n.CreatedAt)
	return err
}

// ListNotes returns notes, newest first. A limit of 0 means no limit.
func (db *DB) ListNotes(ctx context.Context, limit int) ([]Note, error) {
	query := `SELECT id, body, created_at FROM notes ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note by ID
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	return db.deleteByID(ctx, "notes", id)
}

// AddEvent inserts a calendar event
func (db *DB) AddEvent(ctx context.Context, e *Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO events (id, title, date, time, created_at) VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.Title, e.Date, e.Time, e.CreatedAt)
	return err
}

// ListEvents returns events in date order, all-day events before timed ones
func (db *DB) ListEvents(ctx context.Context, r EventRange) ([]Event, error) {
	query := `SELECT id, title, date, time, created_at FROM events WHERE 1=1`
	args := []interface{}{}

	if r.From != "" {
		query += " AND date >= ?"
		args = append(args, r.From)
	}
	if r.To != "" {
		query += " AND date <= ?"
		args = append(args, r.To)
	}

	query += " ORDER BY date ASC, time ASC, created_at ASC"

	if r.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, r.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// DeleteEvent removes an event by ID
func (db *DB) DeleteEvent(ctx context.Context, id string) error {
	return db.deleteByID(ctx, "events", id)
}

// AddTask inserts a task or goal
func (db *DB) AddTask(ctx context.Context, t *Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Kind == "" {
		t.Kind = KindTask
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("invalid task kind: %s", t.Kind)
	}
	t.CreatedAt = time.Now()

	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (id, kind, text, done, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Kind, t.Text, t.Done, t.CreatedAt, NullTime(t.CompletedAt))
	return err
}

// ListTasks returns tasks in creation order
func (db *DB) ListTasks(ctx context.Context, opts TaskListOptions) ([]Task, error) {
	query := `
		SELECT id, kind, text, done, created_at, completed_at
		FROM tasks WHERE 1=1
	`
	args := []interface{}{}

	if opts.Kind != nil {
		query += " AND kind = ?"
		args = append(args, *opts.Kind)
	}
	if !opts.IncludeDone {
		query += " AND done = 0"
	}

	query += " ORDER BY created_at ASC, rowid ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var completedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.Kind, &t.Text, &t.Done, &t.CreatedAt, &completedAt); err != nil {
			return nil, err
		}
		t.CompletedAt = TimePtr(completedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// OpenTaskTexts returns the text of every open task and goal, in order
func (db *DB) OpenTaskTexts(ctx context.Context) (tasks, goals []string, err error) {
	all, err := db.ListTasks(ctx, TaskListOptions{})
	if err != nil {
		return nil, nil, err
	}

	for _, t := range all {
		switch t.Kind {
		case KindGoal:
			goals = append(goals, t.Text)
		default:
			tasks = append(tasks, t.Text)
		}
	}
	return tasks, goals, nil
}

// CompleteTask marks a task done. id may be a unique prefix.
func (db *DB) CompleteTask(ctx context.Context, id string) error {
	full, err := db.resolveID(ctx, "tasks", id)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE tasks SET done = 1, completed_at = ? WHERE id = ?
	`, time.Now(), full)
	return err
}

// DeleteTask removes a task by ID
func (db *DB) DeleteTask(ctx context.Context, id string) error {
	return db.deleteByID(ctx, "tasks", id)
}

// deleteByID is only called with fixed table names
func (db *DB) deleteByID(ctx context.Context, table, id string) error {
	full, err := db.resolveID(ctx, table, id)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", full)
	return err
}

// resolveID expands a full id or a unique prefix of one, as printed in
// tables, into the stored id.
func (db *DB) resolveID(ctx context.Context, table, id string) (string, error) {
	kind := table[:len(table)-1]
	if id == "" {
		return "", fmt.Errorf("%s: %w", kind, ErrNotFound)
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id FROM "+table+" WHERE id = ? OR id LIKE ? ESCAPE '\\' ORDER BY id = ? DESC LIMIT 2",
		id, escapeLike(id)+"%", id)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return "", err
		}
		ids = append(ids, v)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch {
	case len(ids) == 0:
		return "", fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	case ids[0] == id, len(ids) == 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%s %s: %w", kind, id, ErrAmbiguousID)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
