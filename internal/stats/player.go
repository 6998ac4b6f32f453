package stats

import (
	"math"
	"time"
)

// PlayerStats accumulates one player's combat statistics. Exactly one replay
// mutates a PlayerStats while a match is being reconstructed; afterwards it
// is treated as an immutable value. Merge never touches its operands.
type PlayerStats struct {
	PlayerID string

	Kills     int
	Deaths    int
	Teamkills int
	Suicides  int

	AlliedKills  int
	AxisKills    int
	AlliedDeaths int
	AxisDeaths   int

	MatchesPlayed int

	MaxKillStreak  int
	MaxDeathStreak int

	names   *FreqTable
	faction Faction

	weapons *FreqTable // weapon id → kills with it
	causes  *FreqTable // weapon id → deaths to it
	victims *FreqTable // victim player id → kills+teamkills on them
	nemeses *FreqTable // killer player id → deaths to them

	// Current streaks are session-local: they reset on the opposite event
	// and are discarded at merge boundaries.
	curKillStreak  int
	curDeathStreak int

	playtime     float64 // closed-session seconds
	sessionStart *time.Time
	windowEnd    time.Time
}

// NewPlayerStats returns an accumulator for one player over the given window,
// with a non-empty name counted as the first observation. The player is
// assumed connected at window open until a join event says otherwise.
func NewPlayerStats(id, name string, windowStart, windowEnd time.Time) *PlayerStats {
	start := windowStart
	p := &PlayerStats{
		PlayerID:      id,
		MatchesPlayed: 1,
		names:         NewFreqTable(),
		weapons:       NewFreqTable(NoneKey),
		causes:        NewFreqTable(NoneKey),
		victims:       NewFreqTable(),
		nemeses:       NewFreqTable(),
		sessionStart:  &start,
		windowEnd:     windowEnd,
	}
	p.SeeName(name)
	return p
}

// SeeName records one occurrence of a display name.
func (p *PlayerStats) SeeName(name string) {
	if name != "" {
		p.names.Add(name)
	}
}

// Name returns the most frequently seen display name, first-seen on ties.
func (p *PlayerStats) Name() string { return p.names.Top().Key }

// Faction returns the resolved faction for this player.
func (p *PlayerStats) Faction() Faction { return p.faction }

// WidenFaction folds a faction observation into the resolved faction.
func (p *PlayerStats) WidenFaction(f Faction) { p.faction = p.faction.Widen(f) }

// RecordKill counts a kill on victimID with the given weapon, attributed to
// the killer's faction at the time of the event.
func (p *PlayerStats) RecordKill(victimID, weapon string, faction Faction) {
	p.Kills++
	switch faction {
	case Allies:
		p.AlliedKills++
	case Axis:
		p.AxisKills++
	}
	p.weapons.Add(weapon)
	p.victims.Add(victimID)

	p.curKillStreak++
	if p.curKillStreak > p.MaxKillStreak {
		p.MaxKillStreak = p.curKillStreak
	}
	p.curDeathStreak = 0
}

// RecordTeamkill counts a kill on a teammate. Teamkills do not feed the
// weapon table or the streaks, so total kills and total deaths diverge
// whenever they occur.
func (p *PlayerStats) RecordTeamkill(victimID string) {
	p.Teamkills++
	p.victims.Add(victimID)
}

// RecordDeath counts a death to killerID with the given weapon, attributed
// to the victim's faction at the time of the event.
func (p *PlayerStats) RecordDeath(killerID, weapon string, faction Faction) {
	p.Deaths++
	switch faction {
	case Allies:
		p.AlliedDeaths++
	case Axis:
		p.AxisDeaths++
	}
	p.causes.Add(weapon)
	p.nemeses.Add(killerID)

	p.curKillStreak = 0
	p.curDeathStreak++
	if p.curDeathStreak > p.MaxDeathStreak {
		p.MaxDeathStreak = p.curDeathStreak
	}
}

// RecordSuicide counts a self-inflicted death. It increments deaths and
// suicides, never kills.
func (p *PlayerStats) RecordSuicide(faction Faction) {
	p.Deaths++
	p.Suicides++
	switch faction {
	case Allies:
		p.AlliedDeaths++
	case Axis:
		p.AxisDeaths++
	}

	p.curKillStreak = 0
	p.curDeathStreak++
	if p.curDeathStreak > p.MaxDeathStreak {
		p.MaxDeathStreak = p.curDeathStreak
	}
}

// Join opens a playtime session at the given time.
func (p *PlayerStats) Join(t time.Time) {
	start := t
	p.sessionStart = &start
}

// Leave closes the open playtime session at the given time. It reports false
// when the player was already offline; the session state and accumulated
// playtime are left unchanged in that case.
func (p *PlayerStats) Leave(t time.Time) bool {
	if p.sessionStart == nil {
		return false
	}
	p.playtime += t.Sub(*p.sessionStart).Seconds()
	p.sessionStart = nil
	return true
}

// Playtime returns total playtime in whole seconds. A session still open is
// extrapolated up to the window end.
func (p *PlayerStats) Playtime() int {
	total := p.playtime
	if p.sessionStart != nil {
		total += p.windowEnd.Sub(*p.sessionStart).Seconds()
	}
	return int(total)
}

// KillDeathRatio returns kills/deaths rounded to two decimals, or the raw
// kill count when the player never died.
func (p *PlayerStats) KillDeathRatio() float64 {
	if p.Deaths == 0 {
		return float64(p.Kills)
	}
	return round2(float64(p.Kills) / float64(p.Deaths))
}

// KillsPerMatch returns kills averaged over matches played.
func (p *PlayerStats) KillsPerMatch() float64 {
	if p.MatchesPlayed == 0 {
		return float64(p.Kills)
	}
	return round2(float64(p.Kills) / float64(p.MatchesPlayed))
}

// KillsPerMinute returns the kill rate over playtime, or the raw kill count
// when no playtime was recorded.
func (p *PlayerStats) KillsPerMinute() float64 {
	playtime := p.Playtime()
	if playtime == 0 {
		return float64(p.Kills)
	}
	return round2(float64(p.Kills) / (float64(playtime) / 60))
}

// Names returns the display-name frequency table.
func (p *PlayerStats) Names() *FreqTable { return p.names }

// Weapons returns the weapon-used frequency table, including the None
// sentinel.
func (p *PlayerStats) Weapons() *FreqTable { return p.weapons }

// Causes returns the death-cause frequency table, including the None
// sentinel.
func (p *PlayerStats) Causes() *FreqTable { return p.causes }

// Victims returns kills and teamkills keyed by victim player id.
func (p *PlayerStats) Victims() *FreqTable { return p.victims }

// Nemeses returns deaths keyed by killer player id.
func (p *PlayerStats) Nemeses() *FreqTable { return p.nemeses }

// MostUsedWeapon returns the weapon with the most kills.
func (p *PlayerStats) MostUsedWeapon() FreqEntry { return p.weapons.Top() }

// DeathCause returns the weapon this player most often died to.
func (p *PlayerStats) DeathCause() FreqEntry { return p.causes.Top() }

// TopVictim returns the player id this player killed most often.
func (p *PlayerStats) TopVictim() FreqEntry {
	if p.victims.Len() == 0 {
		return FreqEntry{Key: NoneKey}
	}
	return p.victims.Top()
}

// TopNemesis returns the player id that killed this player most often.
func (p *PlayerStats) TopNemesis() FreqEntry {
	if p.nemeses.Len() == 0 {
		return FreqEntry{Key: NoneKey}
	}
	return p.nemeses.Top()
}

// Merge combines two accumulators for the same player identity into a new
// one. Additive counters and frequency tables sum, streak maxima take the
// larger operand, factions widen, and playtime sums with any open sessions
// of the operands already extrapolated. Current streaks are not carried
// over. Neither operand is modified.
func (p *PlayerStats) Merge(other *PlayerStats) *PlayerStats {
	merged := &PlayerStats{
		PlayerID: p.PlayerID,

		Kills:     p.Kills + other.Kills,
		Deaths:    p.Deaths + other.Deaths,
		Teamkills: p.Teamkills + other.Teamkills,
		Suicides:  p.Suicides + other.Suicides,

		AlliedKills:  p.AlliedKills + other.AlliedKills,
		AxisKills:    p.AxisKills + other.AxisKills,
		AlliedDeaths: p.AlliedDeaths + other.AlliedDeaths,
		AxisDeaths:   p.AxisDeaths + other.AxisDeaths,

		MatchesPlayed: p.MatchesPlayed + other.MatchesPlayed,

		MaxKillStreak:  max(p.MaxKillStreak, other.MaxKillStreak),
		MaxDeathStreak: max(p.MaxDeathStreak, other.MaxDeathStreak),

		names:   p.names.Merge(other.names),
		weapons: p.weapons.Merge(other.weapons),
		causes:  p.causes.Merge(other.causes),
		victims: p.victims.Merge(other.victims),
		nemeses: p.nemeses.Merge(other.nemeses),

		playtime:  float64(p.Playtime() + other.Playtime()),
		windowEnd: p.windowEnd,
	}
	merged.faction = p.faction.Widen(other.faction)
	return merged
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
