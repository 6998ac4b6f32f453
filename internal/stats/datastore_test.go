package stats

import (
	"testing"
	"time"
)

// makeStore builds a two-player store where every death is accounted for by a
// kill or a teamkill.
func makeStore(t *testing.T) *DataStore {
	t.Helper()
	a := newPlayer(t, "a", "Alice")
	b := newPlayer(t, "b", "Bob")

	a.WidenFaction(Allies)
	b.WidenFaction(Axis)

	a.RecordKill("b", "rifle", Allies)
	b.RecordDeath("a", "rifle", Axis)
	a.RecordKill("b", "rifle", Allies)
	b.RecordDeath("a", "rifle", Axis)
	b.RecordKill("a", "smg", Axis)
	a.RecordDeath("b", "smg", Allies)

	return NewDataStore(10*time.Minute, []*PlayerStats{a, b})
}

// TestDataStore_Totals: aggregate counters sum across players.
func TestDataStore_Totals(t *testing.T) {
	ds := makeStore(t)
	if ds.TotalKills() != 3 || ds.TotalDeaths() != 3 {
		t.Errorf("totals: want 3/3, got %d/%d", ds.TotalKills(), ds.TotalDeaths())
	}
	if ds.TotalAlliedKills() != 2 || ds.TotalAxisKills() != 1 {
		t.Errorf("faction kills: want 2/1, got %d/%d", ds.TotalAlliedKills(), ds.TotalAxisKills())
	}
	if ds.NumPlayers() != 2 {
		t.Errorf("NumPlayers: want 2, got %d", ds.NumPlayers())
	}
	if got := ds.AvgKillsPerMinute(); got != 0.3 {
		t.Errorf("AvgKillsPerMinute: want 0.3, got %v", got)
	}
}

// TestDataStore_DuplicateIDsMerge: players sharing an id collapse into one
// accumulator instead of being dropped.
func TestDataStore_DuplicateIDsMerge(t *testing.T) {
	a1 := newPlayer(t, "a", "Alice")
	a1.RecordKill("x", "rifle", Allies)
	a2 := newPlayer(t, "a", "Alice")
	a2.RecordKill("x", "rifle", Allies)
	a2.RecordKill("x", "rifle", Allies)

	ds := NewDataStore(time.Minute, []*PlayerStats{a1, a2})
	if ds.NumPlayers() != 1 {
		t.Fatalf("NumPlayers: want 1, got %d", ds.NumPlayers())
	}
	if got := ds.FindPlayer("a").Kills; got != 3 {
		t.Errorf("merged kills: want 3, got %d", got)
	}
}

// TestDataStore_EmptyMetrics: derived metrics degrade to zero on an empty
// store instead of dividing by zero.
func TestDataStore_EmptyMetrics(t *testing.T) {
	ds := NewDataStore(0, nil)
	if ds.KillDeathRatio() != 0 || ds.AvgKills() != 0 || ds.AvgKillsPerMinute() != 0 {
		t.Error("empty store: want all metrics zero")
	}
	if ds.AvgPlaytime() != 0 {
		t.Errorf("AvgPlaytime: want 0, got %v", ds.AvgPlaytime())
	}
}

// TestPlayerName_Fallback: unknown or nameless ids resolve to the id itself.
func TestPlayerName_Fallback(t *testing.T) {
	ds := makeStore(t)
	if got := ds.PlayerName("a"); got != "Alice" {
		t.Errorf("known id: want Alice, got %q", got)
	}
	if got := ds.PlayerName("ghost"); got != "ghost" {
		t.Errorf("unknown id: want ghost, got %q", got)
	}
}

// TestReconcilesTeamkills: the audit holds only while kills plus teamkills
// equal deaths.
func TestReconcilesTeamkills(t *testing.T) {
	ds := makeStore(t)
	if !ds.ReconcilesTeamkills() {
		t.Error("balanced store: want true")
	}

	a := newPlayer(t, "a", "Alice")
	a.RecordDeath("b", "rifle", Allies) // death with no matching kill
	if NewDataStore(time.Minute, []*PlayerStats{a}).ReconcilesTeamkills() {
		t.Error("unbalanced store: want false")
	}
}

// TestWeaponsTeamkilledWith: teamkill weapons are the deaths a weapon caused
// beyond the kills it scored, clipped at zero.
func TestWeaponsTeamkilledWith(t *testing.T) {
	a := newPlayer(t, "a", "Alice")
	b := newPlayer(t, "b", "Bob")
	// a kills b legitimately, then teamkills c with a rifle: c's death is
	// recorded against the rifle but a's kill is not.
	a.RecordKill("b", "rifle", Allies)
	b.RecordDeath("a", "rifle", Axis)
	a.RecordTeamkill("c")
	c := newPlayer(t, "c", "Carol")
	c.RecordDeath("a", "rifle", Allies)

	ds := NewDataStore(time.Minute, []*PlayerStats{a, b, c})
	if !ds.ReconcilesTeamkills() {
		t.Fatal("scenario should reconcile")
	}
	tks := ds.WeaponsTeamkilledWith(false)
	if got := tks.Count("rifle"); got != 1 {
		t.Errorf("rifle teamkills: want 1, got %d", got)
	}
}

// TestDataStore_Merge: durations sum and player sets union by identity.
func TestDataStore_Merge(t *testing.T) {
	first := makeStore(t)
	second := makeStore(t)

	merged := first.Merge(second)
	if merged.Duration() != 20*time.Minute {
		t.Errorf("duration: want 20m, got %v", merged.Duration())
	}
	if merged.NumPlayers() != 2 {
		t.Errorf("NumPlayers: want 2, got %d", merged.NumPlayers())
	}
	if got := merged.FindPlayer("a").Kills; got != 4 {
		t.Errorf("merged kills for a: want 4, got %d", got)
	}
	if got := merged.FindPlayer("a").MatchesPlayed; got != 2 {
		t.Errorf("MatchesPlayed: want 2, got %d", got)
	}

	// Operands untouched.
	if first.FindPlayer("a").Kills != 2 {
		t.Errorf("left operand mutated: kills=%d", first.FindPlayer("a").Kills)
	}
}

// TestUnion_OrderIndependent: folding stores in any order yields the same
// aggregate.
func TestUnion_OrderIndependent(t *testing.T) {
	a := makeStore(t)

	b1 := newPlayer(t, "c", "Carol")
	b1.RecordKill("a", "tank", Axis)
	b := NewDataStore(5*time.Minute, []*PlayerStats{b1})

	u1 := Union(a, b)
	u2 := Union(b, a)
	if u1.TotalKills() != u2.TotalKills() || u1.Duration() != u2.Duration() {
		t.Errorf("unions differ: %d/%v vs %d/%v", u1.TotalKills(), u1.Duration(), u2.TotalKills(), u2.Duration())
	}
	if u1.NumPlayers() != 3 || u2.NumPlayers() != 3 {
		t.Errorf("NumPlayers: want 3/3, got %d/%d", u1.NumPlayers(), u2.NumPlayers())
	}
}
