package stats

import (
	"testing"
	"time"
)

func makeMatch(t *testing.T, score1, score2 int, duration time.Duration) *MatchRecord {
	t.Helper()
	a := newPlayer(t, "a", "Alice")
	b := newPlayer(t, "b", "Bob")
	a.WidenFaction(Allies)
	b.WidenFaction(Axis)

	for i := 0; i < 4; i++ {
		a.RecordKill("b", "rifle", Allies)
		b.RecordDeath("a", "rifle", Axis)
	}
	b.RecordKill("a", "smg", Axis)
	a.RecordDeath("b", "smg", Allies)

	ds := NewDataStore(duration, []*PlayerStats{a, b})
	return NewMatchRecord(ds, "CARENTAN", score1, score2)
}

// TestWinnerLoser: score 1 is Allies; a draw yields Any for both.
func TestWinnerLoser(t *testing.T) {
	m := makeMatch(t, 3, 2, time.Hour)
	if m.Winner() != Allies || m.Loser() != Axis {
		t.Errorf("3-2: want Allies/Axis, got %v/%v", m.Winner(), m.Loser())
	}

	m = makeMatch(t, 1, 4, time.Hour)
	if m.Winner() != Axis || m.Loser() != Allies {
		t.Errorf("1-4: want Axis/Allies, got %v/%v", m.Winner(), m.Loser())
	}

	m = makeMatch(t, 2, 2, time.Hour)
	if m.Winner() != FactionAny || m.Loser() != FactionAny {
		t.Errorf("draw: want Any/Any, got %v/%v", m.Winner(), m.Loser())
	}
}

// TestFactionStats: slicing keeps only the requested side, optionally with
// unresolved players.
func TestFactionStats(t *testing.T) {
	m := makeMatch(t, 3, 2, time.Hour)

	allies := m.FactionStats(Allies, false)
	if allies.NumPlayers() != 1 || allies.TotalKills() != 4 {
		t.Errorf("allies slice: want 1 player / 4 kills, got %d/%d", allies.NumPlayers(), allies.TotalKills())
	}

	// Add an unresolved player.
	ghost := newPlayer(t, "g", "Ghost")
	m2 := NewMatchRecord(NewDataStore(m.Duration(), append(m.Players(), ghost)), m.MapName, m.Score1, m.Score2)

	if got := m2.FactionStats(Allies, false).NumPlayers(); got != 1 {
		t.Errorf("without unknown: want 1, got %d", got)
	}
	if got := m2.FactionStats(Allies, true).NumPlayers(); got != 2 {
		t.Errorf("with unknown: want 2, got %d", got)
	}
}

// TestMatchGroup_Union: the union sums durations and merges the shared
// players once, no matter how often it is asked for.
func TestMatchGroup_Union(t *testing.T) {
	g := NewMatchGroup(
		makeMatch(t, 3, 2, time.Hour),
		makeMatch(t, 0, 1, 30*time.Minute),
	)

	u := g.Union()
	if u.Duration() != 90*time.Minute {
		t.Errorf("duration: want 90m, got %v", u.Duration())
	}
	if u.NumPlayers() != 2 {
		t.Errorf("NumPlayers: want 2, got %d", u.NumPlayers())
	}
	if got := u.FindPlayer("a").MatchesPlayed; got != 2 {
		t.Errorf("MatchesPlayed: want 2, got %d", got)
	}
	if g.Union() != u {
		t.Error("Union: want the same cached aggregate")
	}
}

// TestMatchGroup_Metrics: group-level reductions over the members.
func TestMatchGroup_Metrics(t *testing.T) {
	short := makeMatch(t, 0, 1, 30*time.Minute)
	g := NewMatchGroup(
		makeMatch(t, 3, 2, time.Hour),
		short,
	)

	if g.NumMatchesPlayed() != 2 {
		t.Errorf("NumMatchesPlayed: want 2, got %d", g.NumMatchesPlayed())
	}
	if g.TotalMatchLength() != 90*time.Minute {
		t.Errorf("TotalMatchLength: want 90m, got %v", g.TotalMatchLength())
	}
	if g.AvgMatchLength() != 45*time.Minute {
		t.Errorf("AvgMatchLength: want 45m, got %v", g.AvgMatchLength())
	}
	if g.ShortestMatch() != short {
		t.Error("ShortestMatch: want the 30m match")
	}

	// Match 1 won by Allies (4 kills), match 2 won by Axis (1 kill).
	if got := g.WinnerKills(); got != 5 {
		t.Errorf("WinnerKills: want 5, got %d", got)
	}
	if got := g.LoserKills(); got != 5 {
		t.Errorf("LoserKills: want 5, got %d", got)
	}
	if got := g.WinnerDeaths(); got != 5 {
		t.Errorf("WinnerDeaths: want 5, got %d", got)
	}

	// Allies win 4/1 in match 1; Axis win 1/4 in match 2.
	if got := g.NumWinnersPositiveKDR(); got != 1 {
		t.Errorf("NumWinnersPositiveKDR: want 1, got %d", got)
	}
}

// TestMatchesForPlayer: sub-group of matches a player appeared in.
func TestMatchesForPlayer(t *testing.T) {
	m1 := makeMatch(t, 3, 2, time.Hour)

	c := newPlayer(t, "c", "Carol")
	c.RecordKill("d", "rifle", Allies)
	m2 := NewMatchRecord(NewDataStore(time.Hour, []*PlayerStats{c}), "FOY", 5, 0)

	g := NewMatchGroup(m1, m2)
	if got := g.MatchesForPlayer("a").Len(); got != 1 {
		t.Errorf("matches for a: want 1, got %d", got)
	}
	if got := g.MatchesForPlayer("c").Len(); got != 1 {
		t.Errorf("matches for c: want 1, got %d", got)
	}
	if got := g.MatchesForPlayer("ghost").Len(); got != 0 {
		t.Errorf("matches for ghost: want 0, got %d", got)
	}
}
