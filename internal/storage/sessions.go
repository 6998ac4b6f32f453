// Package storage persists capture sessions and their raw log events in an
// SQLite database, so matches can be replayed long after the capture ended.
package storage

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Soxxes/HLLLogUtilities/internal/replay"
)

//go:embed schema.sql
var schemaSQL string

// ErrNoSession is returned when a session id does not exist or was deleted.
var ErrNoSession = errors.New("no such session")

// DB is an open capture-session store.
type DB struct {
	conn *sql.DB
}

// Open opens the session store at path, creating the database file and the
// sessions/session_logs schema as needed. Pass ":memory:" for a throwaway
// store.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply session schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the store.
func (db *DB) Close() error { return db.conn.Close() }

// Session is one stored capture window of server log events.
type Session struct {
	ID      int64
	Name    string
	MapName string
	Start   time.Time
	End     time.Time
}

// Duration returns the session's window length.
func (s Session) Duration() time.Duration { return s.End.Sub(s.Start) }

// timeLayout is RFC3339 with a fixed-width fraction so stored timestamps
// sort lexicographically; RFC3339Nano trims trailing zeros and would not.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// CreateSession stores a new session and returns its id.
func (db *DB) CreateSession(s Session) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO sessions(name, map_name, start_time, end_time) VALUES (?, ?, ?, ?)",
		s.Name, s.MapName, s.Start.UTC().Format(timeLayout), s.End.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

// GetSession loads one session by id.
func (db *DB) GetSession(id int64) (Session, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, map_name, start_time, end_time FROM sessions WHERE id = ? AND deleted = 0", id)

	var (
		s          Session
		start, end string
	)
	if err := row.Scan(&s.ID, &s.Name, &s.MapName, &start, &end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("query session: %w", err)
	}
	if err := parseTimes(&s, start, end); err != nil {
		return Session{}, err
	}
	return s, nil
}

// ListSessions returns all live sessions ordered by start time.
func (db *DB) ListSessions() ([]Session, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, map_name, start_time, end_time FROM sessions WHERE deleted = 0 ORDER BY start_time")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			s          Session
			start, end string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.MapName, &start, &end); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := parseTimes(&s, start, end); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteSession soft-deletes a session and removes its stored events.
func (db *DB) DeleteSession(id int64) error {
	res, err := db.conn.Exec("UPDATE sessions SET deleted = 1 WHERE id = ? AND deleted = 0", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoSession
	}
	if _, err := db.conn.Exec("DELETE FROM session_logs WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("delete session logs: %w", err)
	}
	return nil
}

// InsertEvents bulk-inserts log events for a session in one transaction.
func (db *DB) InsertEvents(sessionID int64, events []replay.Event) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO session_logs(
			session_id, event_time, type,
			actor_id, actor_name, actor_faction,
			target_id, target_name, target_faction,
			weapon, message, old_faction, new_faction
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err = stmt.Exec(
			sessionID, ev.Time.UTC().Format(timeLayout), string(ev.Type),
			ev.ActorID, ev.ActorName, ev.ActorFaction,
			ev.TargetID, ev.TargetName, ev.TargetFaction,
			ev.Weapon, ev.Message, ev.OldFaction, ev.NewFaction,
		)
		if err != nil {
			return fmt.Errorf("insert event at %s: %w", ev.Time, err)
		}
	}
	return tx.Commit()
}

// GetEvents returns a session's events in chronological order, optionally
// restricted to [from, to).
func (db *DB) GetEvents(sessionID int64, from, to *time.Time) ([]replay.Event, error) {
	query := `
		SELECT event_time, type,
			actor_id, actor_name, actor_faction,
			target_id, target_name, target_faction,
			weapon, message, old_faction, new_faction
		FROM session_logs WHERE session_id = ?`
	args := []any{sessionID}
	if from != nil {
		query += " AND event_time >= ?"
		args = append(args, from.UTC().Format(timeLayout))
	}
	if to != nil {
		query += " AND event_time < ?"
		args = append(args, to.UTC().Format(timeLayout))
	}
	query += " ORDER BY event_time"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []replay.Event
	for rows.Next() {
		var (
			ev      replay.Event
			ts, typ string
		)
		err := rows.Scan(
			&ts, &typ,
			&ev.ActorID, &ev.ActorName, &ev.ActorFaction,
			&ev.TargetID, &ev.TargetName, &ev.TargetFaction,
			&ev.Weapon, &ev.Message, &ev.OldFaction, &ev.NewFaction,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Time, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parse event time %q: %w", ts, err)
		}
		ev.Type = replay.EventType(typ)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func parseTimes(s *Session, start, end string) error {
	var err error
	if s.Start, err = time.Parse(timeLayout, start); err != nil {
		return fmt.Errorf("parse session start %q: %w", start, err)
	}
	if s.End, err = time.Parse(timeLayout, end); err != nil {
		return fmt.Errorf("parse session end %q: %w", end, err)
	}
	return nil
}
