package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/Soxxes/HLLLogUtilities/internal/replay"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var sessionStart = time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

func makeSession(name string, offset time.Duration) Session {
	return Session{
		Name:    name,
		MapName: "CARENTAN",
		Start:   sessionStart.Add(offset),
		End:     sessionStart.Add(offset + 90*time.Minute),
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := openMemDB(t)

	id, err := db.CreateSession(makeSession("friday scrim", 0))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := db.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Name != "friday scrim" || got.MapName != "CARENTAN" {
		t.Errorf("session fields: got %+v", got)
	}
	if !got.Start.Equal(sessionStart) || got.Duration() != 90*time.Minute {
		t.Errorf("session times: start=%v duration=%v", got.Start, got.Duration())
	}
}

func TestGetSession_NotFound(t *testing.T) {
	db := openMemDB(t)
	if _, err := db.GetSession(42); !errors.Is(err, ErrNoSession) {
		t.Errorf("want ErrNoSession, got %v", err)
	}
}

func TestListSessions_OrderedByStart(t *testing.T) {
	db := openMemDB(t)

	// Insert out of chronological order.
	if _, err := db.CreateSession(makeSession("second", 2*time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := db.CreateSession(makeSession("first", 0)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sessions, err := db.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("want 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Name != "first" || sessions[1].Name != "second" {
		t.Errorf("order: got %q, %q", sessions[0].Name, sessions[1].Name)
	}
}

func TestDeleteSession(t *testing.T) {
	db := openMemDB(t)

	id, err := db.CreateSession(makeSession("doomed", 0))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := db.InsertEvents(id, []replay.Event{
		{Time: sessionStart, Type: replay.EventJoin, ActorID: "a", ActorName: "Alice"},
	}); err != nil {
		t.Fatalf("InsertEvents: %v", err)
	}

	if err := db.DeleteSession(id); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := db.GetSession(id); !errors.Is(err, ErrNoSession) {
		t.Errorf("deleted session still readable: %v", err)
	}
	events, err := db.GetEvents(id, nil, nil)
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("want 0 events after delete, got %d", len(events))
	}

	if err := db.DeleteSession(id); !errors.Is(err, ErrNoSession) {
		t.Errorf("double delete: want ErrNoSession, got %v", err)
	}
}

func TestEventsRoundTripAndRange(t *testing.T) {
	db := openMemDB(t)

	id, err := db.CreateSession(makeSession("events", 0))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	events := []replay.Event{
		{Time: sessionStart, Type: replay.EventJoin, ActorID: "a", ActorName: "Alice"},
		{
			Time: sessionStart.Add(5 * time.Minute), Type: replay.EventKill,
			ActorID: "a", ActorName: "Alice", ActorFaction: "Allies",
			TargetID: "b", TargetName: "Bob", TargetFaction: "Axis",
			Weapon: "M1 GARAND",
		},
		{Time: sessionStart.Add(30 * time.Minute), Type: replay.EventMatchEnded, Message: "2 - 1"},
	}
	// Inserted out of order; reads must come back chronological.
	if err := db.InsertEvents(id, []replay.Event{events[2], events[0], events[1]}); err != nil {
		t.Fatalf("InsertEvents: %v", err)
	}

	got, err := db.GetEvents(id, nil, nil)
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 events, got %d", len(got))
	}
	for i := range got {
		if !got[i].Time.Equal(events[i].Time) || got[i].Type != events[i].Type {
			t.Errorf("event %d: want %v %s, got %v %s",
				i, events[i].Time, events[i].Type, got[i].Time, got[i].Type)
		}
	}
	if got[1].Weapon != "M1 GARAND" || got[1].TargetName != "Bob" {
		t.Errorf("kill payload lost: %+v", got[1])
	}

	// Half-open range [from, to): the boundary event at `to` is excluded.
	from := sessionStart.Add(time.Minute)
	to := sessionStart.Add(30 * time.Minute)
	ranged, err := db.GetEvents(id, &from, &to)
	if err != nil {
		t.Fatalf("GetEvents range: %v", err)
	}
	if len(ranged) != 1 || ranged[0].Type != replay.EventKill {
		t.Errorf("ranged query: want just the kill, got %d events", len(ranged))
	}
}

func TestEventTimestampsSortLexicographically(t *testing.T) {
	// Sub-second timestamps must not break the stored ORDER BY.
	db := openMemDB(t)
	id, err := db.CreateSession(makeSession("precision", 0))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	times := []time.Time{
		sessionStart.Add(500 * time.Millisecond),
		sessionStart.Add(time.Second),
		sessionStart.Add(time.Second + 250*time.Millisecond),
	}
	var events []replay.Event
	for _, ts := range times {
		events = append(events, replay.Event{Time: ts, Type: replay.EventJoin, ActorID: "a"})
	}
	if err := db.InsertEvents(id, []replay.Event{events[2], events[0], events[1]}); err != nil {
		t.Fatalf("InsertEvents: %v", err)
	}

	got, err := db.GetEvents(id, nil, nil)
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	for i := range times {
		if !got[i].Time.Equal(times[i]) {
			t.Errorf("event %d: want %v, got %v", i, times[i], got[i].Time)
		}
	}
}
