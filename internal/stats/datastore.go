package stats

import "time"

// DataStore is an aggregate view over a set of player accumulators plus the
// time span they cover. Players are unique by identity; merging two stores
// sums accumulators that share an id. All derived metrics are pure
// reductions with zero denominators degrading to 0 (or the numerator)
// instead of panicking.
type DataStore struct {
	duration time.Duration
	players  []*PlayerStats
	index    map[string]*PlayerStats
}

// NewDataStore builds a store over the given players. Later entries sharing
// an id are merged into the earlier one rather than silently dropped.
func NewDataStore(duration time.Duration, players []*PlayerStats) *DataStore {
	ds := &DataStore{duration: duration, index: make(map[string]*PlayerStats, len(players))}
	for _, p := range players {
		ds.add(p)
	}
	return ds
}

func (d *DataStore) add(p *PlayerStats) {
	if existing, ok := d.index[p.PlayerID]; ok {
		merged := existing.Merge(p)
		d.index[p.PlayerID] = merged
		for i, q := range d.players {
			if q.PlayerID == p.PlayerID {
				d.players[i] = merged
				break
			}
		}
		return
	}
	d.index[p.PlayerID] = p
	d.players = append(d.players, p)
}

// Duration returns the span covered by this store.
func (d *DataStore) Duration() time.Duration { return d.duration }

// Players returns the player accumulators in stable first-seen order.
func (d *DataStore) Players() []*PlayerStats { return d.players }

// NumPlayers returns the number of distinct players.
func (d *DataStore) NumPlayers() int { return len(d.players) }

// FindPlayer returns the accumulator for the given player id, nil if absent.
func (d *DataStore) FindPlayer(id string) *PlayerStats { return d.index[id] }

// PlayerName resolves a player id to its display name, falling back to the
// id itself when the player is unknown or nameless.
func (d *DataStore) PlayerName(id string) string {
	if p := d.index[id]; p != nil {
		if name := p.Name(); name != "" {
			return name
		}
	}
	return id
}

func (d *DataStore) sum(f func(*PlayerStats) int) int {
	total := 0
	for _, p := range d.players {
		total += f(p)
	}
	return total
}

func (d *DataStore) TotalKills() int     { return d.sum(func(p *PlayerStats) int { return p.Kills }) }
func (d *DataStore) TotalDeaths() int    { return d.sum(func(p *PlayerStats) int { return p.Deaths }) }
func (d *DataStore) TotalTeamkills() int { return d.sum(func(p *PlayerStats) int { return p.Teamkills }) }
func (d *DataStore) TotalSuicides() int  { return d.sum(func(p *PlayerStats) int { return p.Suicides }) }

func (d *DataStore) TotalAlliedKills() int {
	return d.sum(func(p *PlayerStats) int { return p.AlliedKills })
}

func (d *DataStore) TotalAxisKills() int {
	return d.sum(func(p *PlayerStats) int { return p.AxisKills })
}

func (d *DataStore) TotalAlliedDeaths() int {
	return d.sum(func(p *PlayerStats) int { return p.AlliedDeaths })
}

func (d *DataStore) TotalAxisDeaths() int {
	return d.sum(func(p *PlayerStats) int { return p.AxisDeaths })
}

// TotalPlaytime returns the summed playtime of all players.
func (d *DataStore) TotalPlaytime() time.Duration {
	return time.Duration(d.sum(func(p *PlayerStats) int { return p.Playtime() })) * time.Second
}

// KillDeathRatio returns total kills over total deaths, or the raw kill
// count when nobody died.
func (d *DataStore) KillDeathRatio() float64 {
	deaths := d.TotalDeaths()
	if deaths == 0 {
		return float64(d.TotalKills())
	}
	return round2(float64(d.TotalKills()) / float64(deaths))
}

func (d *DataStore) avg(total int) float64 {
	if len(d.players) == 0 {
		return 0
	}
	return round2(float64(total) / float64(len(d.players)))
}

func (d *DataStore) AvgKills() float64     { return d.avg(d.TotalKills()) }
func (d *DataStore) AvgDeaths() float64    { return d.avg(d.TotalDeaths()) }
func (d *DataStore) AvgTeamkills() float64 { return d.avg(d.TotalTeamkills()) }

// AvgPlaytime returns the mean playtime per player.
func (d *DataStore) AvgPlaytime() time.Duration {
	if len(d.players) == 0 {
		return 0
	}
	return d.TotalPlaytime() / time.Duration(len(d.players))
}

func (d *DataStore) perMinute(total int) float64 {
	seconds := d.duration.Seconds()
	if seconds == 0 {
		return float64(total)
	}
	return round2(float64(total) * 60 / seconds)
}

// AvgKillsPerMinute returns total kills per minute of match time.
func (d *DataStore) AvgKillsPerMinute() float64 { return d.perMinute(d.TotalKills()) }

// AvgDeathsPerMinute returns total deaths per minute of match time.
func (d *DataStore) AvgDeathsPerMinute() float64 { return d.perMinute(d.TotalDeaths()) }

// WeaponsKilledWith returns the combined weapon-used table of all players,
// folded through the given category tables.
func (d *DataStore) WeaponsKilledWith(dropUnmapped bool, tables ...CategoryTable) *FreqTable {
	return MapCategories(d.combined((*PlayerStats).Weapons), dropUnmapped, tables...)
}

// WeaponsDiedTo returns the combined death-cause table of all players,
// folded through the given category tables.
func (d *DataStore) WeaponsDiedTo(dropUnmapped bool, tables ...CategoryTable) *FreqTable {
	return MapCategories(d.combined((*PlayerStats).Causes), dropUnmapped, tables...)
}

// WeaponsTeamkilledWith estimates per-weapon teamkills as deaths-to-weapon
// minus kills-with-weapon, clipped to zero. The estimate is only meaningful
// when ReconcilesTeamkills reports true; callers should omit the breakdown
// otherwise.
func (d *DataStore) WeaponsTeamkilledWith(dropUnmapped bool, tables ...CategoryTable) *FreqTable {
	killed := d.WeaponsKilledWith(false)
	died := d.WeaponsDiedTo(false)

	diff := NewFreqTable()
	for _, entry := range died.Sorted() {
		if n := entry.Count - killed.Count(entry.Key); n > 0 {
			diff.AddN(entry.Key, n)
		}
	}
	return MapCategories(diff, dropUnmapped, tables...)
}

// ReconcilesTeamkills reports whether kills plus teamkills account exactly
// for every death, the audit guard for the teamkill-weapon breakdown.
func (d *DataStore) ReconcilesTeamkills() bool {
	return d.TotalKills()+d.TotalTeamkills() == d.TotalDeaths()
}

func (d *DataStore) combined(get func(*PlayerStats) *FreqTable) *FreqTable {
	all := NewFreqTable()
	for _, p := range d.players {
		all = all.Merge(get(p))
	}
	return all
}

// Merge unions two stores into a new one: durations sum and player sets
// union by identity, summing accumulators that collide. Neither operand is
// modified.
func (d *DataStore) Merge(other *DataStore) *DataStore {
	merged := NewDataStore(d.duration+other.duration, d.players)
	for _, p := range other.players {
		merged.add(p)
	}
	return merged
}

// Union folds any number of stores into one with Merge.
func Union(stores ...*DataStore) *DataStore {
	result := NewDataStore(0, nil)
	for _, s := range stores {
		result = result.Merge(s)
	}
	return result
}
