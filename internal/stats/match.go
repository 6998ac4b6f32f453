package stats

import (
	"sync"
	"time"
)

// MatchRecord is one reconstructed match: an aggregate over its players plus
// the map and the final faction scores. Score1 belongs to the Allies,
// Score2 to the Axis.
type MatchRecord struct {
	*DataStore

	MapName string
	Score1  int
	Score2  int
}

// NewMatchRecord wraps a player aggregate with match metadata.
func NewMatchRecord(data *DataStore, mapName string, score1, score2 int) *MatchRecord {
	return &MatchRecord{DataStore: data, MapName: mapName, Score1: score1, Score2: score2}
}

// Winner returns the faction with the higher score, FactionAny on a draw.
func (m *MatchRecord) Winner() Faction {
	switch {
	case m.Score1 > m.Score2:
		return Allies
	case m.Score1 < m.Score2:
		return Axis
	default:
		return FactionAny
	}
}

// Loser returns the faction with the lower score, FactionAny on a draw.
func (m *MatchRecord) Loser() Faction {
	switch {
	case m.Score1 < m.Score2:
		return Allies
	case m.Score1 > m.Score2:
		return Axis
	default:
		return FactionAny
	}
}

// FactionStats slices the match down to players resolved to the given
// faction. With includeUnknown set, players widened to Any or never resolved
// are included as well.
func (m *MatchRecord) FactionStats(faction Faction, includeUnknown bool) *DataStore {
	var players []*PlayerStats
	for _, p := range m.Players() {
		switch {
		case p.Faction() == faction:
			players = append(players, p)
		case includeUnknown && (p.Faction() == FactionAny || p.Faction() == FactionNone):
			players = append(players, p)
		}
	}
	return NewDataStore(m.Duration(), players)
}

// Group returns a single-element group view of this match.
func (m *MatchRecord) Group() *MatchGroup { return NewMatchGroup(m) }

// MatchGroup is an ordered collection of matches with a lazily computed
// union aggregate. Insertion order only matters for chronological queries;
// the union itself is order-independent. A group never mutates its members.
type MatchGroup struct {
	matches []*MatchRecord

	unionOnce sync.Once
	union     *DataStore
}

// NewMatchGroup builds a group over the given matches.
func NewMatchGroup(matches ...*MatchRecord) *MatchGroup {
	return &MatchGroup{matches: matches}
}

// Len returns the number of matches in the group.
func (g *MatchGroup) Len() int { return len(g.matches) }

// Matches returns the contained matches in insertion order.
func (g *MatchGroup) Matches() []*MatchRecord { return g.matches }

// Union returns the fold of all members' player sets plus summed durations.
// The union is computed once and safe to request from concurrent readers.
func (g *MatchGroup) Union() *DataStore {
	g.unionOnce.Do(func() {
		stores := make([]*DataStore, 0, len(g.matches))
		for _, m := range g.matches {
			stores = append(stores, m.DataStore)
		}
		g.union = Union(stores...)
	})
	return g.union
}

// MatchesForPlayer returns the sub-group of matches the given player
// appeared in.
func (g *MatchGroup) MatchesForPlayer(id string) *MatchGroup {
	var matches []*MatchRecord
	for _, m := range g.matches {
		if m.FindPlayer(id) != nil {
			matches = append(matches, m)
		}
	}
	return NewMatchGroup(matches...)
}

// NumMatchesPlayed returns the number of matches in the group.
func (g *MatchGroup) NumMatchesPlayed() int { return len(g.matches) }

// NumWinnersPositiveKDR counts matches where the winning side finished with
// a kill/death ratio of at least one.
func (g *MatchGroup) NumWinnersPositiveKDR() int {
	n := 0
	for _, m := range g.matches {
		if m.FactionStats(m.Winner(), false).KillDeathRatio() >= 1.0 {
			n++
		}
	}
	return n
}

// TotalMatchLength returns the summed duration of all matches.
func (g *MatchGroup) TotalMatchLength() time.Duration { return g.Union().Duration() }

// AvgMatchLength returns the mean match duration, zero for an empty group.
func (g *MatchGroup) AvgMatchLength() time.Duration {
	if len(g.matches) == 0 {
		return 0
	}
	return g.TotalMatchLength() / time.Duration(len(g.matches))
}

// ShortestMatch returns the match with the smallest duration, nil for an
// empty group.
func (g *MatchGroup) ShortestMatch() *MatchRecord {
	var shortest *MatchRecord
	for _, m := range g.matches {
		if shortest == nil || m.Duration() < shortest.Duration() {
			shortest = m
		}
	}
	return shortest
}

func (g *MatchGroup) sumBySide(allied func(*MatchRecord) int, axis func(*MatchRecord) int, winnerSide bool) int {
	total := 0
	for _, m := range g.matches {
		wonByAllies := m.Winner() == Allies
		if wonByAllies == winnerSide {
			total += allied(m)
		} else {
			total += axis(m)
		}
	}
	return total
}

// WinnerKills sums the kills of each match's winning faction.
func (g *MatchGroup) WinnerKills() int {
	return g.sumBySide((*MatchRecord).TotalAlliedKills, (*MatchRecord).TotalAxisKills, true)
}

// LoserKills sums the kills of each match's losing faction.
func (g *MatchGroup) LoserKills() int {
	return g.sumBySide((*MatchRecord).TotalAlliedKills, (*MatchRecord).TotalAxisKills, false)
}

// WinnerDeaths sums the deaths of each match's winning faction.
func (g *MatchGroup) WinnerDeaths() int {
	return g.sumBySide((*MatchRecord).TotalAlliedDeaths, (*MatchRecord).TotalAxisDeaths, true)
}

// LoserDeaths sums the deaths of each match's losing faction.
func (g *MatchGroup) LoserDeaths() int {
	return g.sumBySide((*MatchRecord).TotalAlliedDeaths, (*MatchRecord).TotalAxisDeaths, false)
}
