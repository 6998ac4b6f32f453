package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Soxxes/HLLLogUtilities/internal/mapping"
	"github.com/Soxxes/HLLLogUtilities/internal/stats"
)

// RankPlayers orders players by the composite rank key
// kills-per-minute*1e6 − deaths, descending, stable on ties.
func RankPlayers(data *stats.DataStore) []*stats.PlayerStats {
	players := make([]*stats.PlayerStats, len(data.Players()))
	copy(players, data.Players())
	sort.SliceStable(players, func(i, j int) bool {
		return rankKey(players[i]) > rankKey(players[j])
	})
	return players
}

func rankKey(p *stats.PlayerStats) float64 {
	return p.KillsPerMinute()*1_000_000 - float64(p.Deaths)
}

// PlayerTable renders the ranked player table. The single-match and
// cross-match variants use different column sets; both reproduce the layout
// expected by the existing report consumers. Players with no identity are
// skipped but were already counted in every total.
func PlayerTable(data *stats.DataStore, singleMatch bool, tables mapping.Tables) string {
	var b strings.Builder
	if singleMatch {
		fmt.Fprintf(&b, "%-5s %-25s %-6s %-6s %-5s %-5s %-5s %-6s %-27s %-25s %s",
			"RANK", "NAME", "KILLS", "DEATHS", "K/D", "TKS", "SUIC", "STREAK", "WEAPON", "VICTIM", "NEMESIS")
	} else {
		fmt.Fprintf(&b, "%-6s %-13s %-6s  %-25s %-6s %-6s %-5s %-5s %-5s %-6s %-27s %-25s %-25s %-9s %s",
			"RANK", "STEAMID", "PLAYED", "NAME", "KILLS", "DEATHS", "K/D", "TKS", "SUIC", "STREAK", "WEAPON", "VICTIM", "NEMESIS", "PLAYTIME", "K/MIN")
	}

	rank := 0
	for _, p := range RankPlayers(data) {
		if p.PlayerID == "" {
			continue
		}
		rank++
		b.WriteByte('\n')
		b.WriteString(playerRow(p, rank, singleMatch, data, tables))
	}
	return b.String()
}

func playerRow(p *stats.PlayerStats, rank int, singleMatch bool, data *stats.DataStore, tables mapping.Tables) string {
	weapon := displayWeapon(p, tables)
	victim := p.TopVictim()
	nemesis := p.TopNemesis()

	victimCell := fmt.Sprintf("%s(%d)", resolveName(data, victim.Key), victim.Count)
	nemesisCell := fmt.Sprintf("%s(%d)", resolveName(data, nemesis.Key), nemesis.Count)

	playtime := p.Playtime()
	clock := fmt.Sprintf("%02d:%02d:%02d", playtime/3600, playtime/60%60, playtime%60)

	if singleMatch {
		return fmt.Sprintf("#%-4d %-25s %-6d %-6d %-5s %-5d %-5d %-6d %-28s%-25s %-25s %s",
			rank, p.Name(), p.Kills, p.Deaths, floatStr(p.KillDeathRatio()),
			p.Teamkills, p.Suicides, p.MaxKillStreak,
			weapon, victimCell, nemesisCell, clock)
	}
	return fmt.Sprintf("#%-5d %-17s %2d  %-25s %-6d %-6d %-5s %-5d %-5d %-6d %-28s%-25s %-25s %-9s %s",
		rank, p.PlayerID, p.MatchesPlayed, p.Name(), p.Kills, p.Deaths, floatStr(p.KillDeathRatio()),
		p.Teamkills, p.Suicides, p.MaxKillStreak,
		weapon, victimCell, nemesisCell, clock, floatStr(p.KillsPerMinute()))
}

// displayWeapon returns "Weapon(count)" for the player's most used weapon,
// folded through the factionless display tables.
func displayWeapon(p *stats.PlayerStats, tables mapping.Tables) string {
	top := p.MostUsedWeapon()
	name := top.Key
	if mapped, ok := tables.VehicleWeaponsFactionless[name]; ok {
		name = mapped
	} else if mapped, ok := tables.Factionless[name]; ok {
		name = mapped
	}
	folded := stats.MapCategories(p.Weapons(), false,
		tables.FactionlessTable(), tables.VehicleWeaponsFactionlessTable())
	return fmt.Sprintf("%s(%d)", name, folded.Count(name))
}

func resolveName(data *stats.DataStore, id string) string {
	if id == "" || id == stats.NoneKey {
		return stats.NoneKey
	}
	return data.PlayerName(id)
}

// floatStr formats a ratio the shortest way: 1.5 rather than 1.50.
func floatStr(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BreakdownEntry is one row of a structured per-player breakdown.
type BreakdownEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PlayerReport is the structured per-player record exposed to report
// consumers. Breakdowns are ordered by descending count with the None
// sentinel stripped; victims and nemeses are resolved to display names.
type PlayerReport struct {
	Name           string           `json:"name"`
	PlayerID       string           `json:"player_id"`
	Kills          int              `json:"kills"`
	Deaths         int              `json:"deaths"`
	Teamkills      int              `json:"teamkills"`
	Suicides       int              `json:"suicides"`
	MaxKillstreak  int              `json:"max_killstreak"`
	MaxDeathstreak int              `json:"max_deathstreak"`
	WeaponsUsed    []BreakdownEntry `json:"weapons_used"`
	WeaponsDiedTo  []BreakdownEntry `json:"weapons_died_to"`
	Victims        []BreakdownEntry `json:"victims"`
	Nemeses        []BreakdownEntry `json:"nemeses"`
	MatchesPlayed  int              `json:"matches_played"`
	Playtime       int              `json:"playtime"`
}

// BuildPlayerReport converts one accumulator to its structured form, using
// the surrounding store to resolve victim and nemesis names.
func BuildPlayerReport(data *stats.DataStore, p *stats.PlayerStats) PlayerReport {
	return PlayerReport{
		Name:           p.Name(),
		PlayerID:       p.PlayerID,
		Kills:          p.Kills,
		Deaths:         p.Deaths,
		Teamkills:      p.Teamkills,
		Suicides:       p.Suicides,
		MaxKillstreak:  p.MaxKillStreak,
		MaxDeathstreak: p.MaxDeathStreak,
		WeaponsUsed:    breakdown(p.Weapons(), nil),
		WeaponsDiedTo:  breakdown(p.Causes(), nil),
		Victims:        breakdown(p.Victims(), data),
		Nemeses:        breakdown(p.Nemeses(), data),
		MatchesPlayed:  p.MatchesPlayed,
		Playtime:       p.Playtime(),
	}
}

// PlayerReports returns structured records for all identified players in
// rank order.
func PlayerReports(data *stats.DataStore) []PlayerReport {
	var reports []PlayerReport
	for _, p := range RankPlayers(data) {
		if p.PlayerID == "" {
			continue
		}
		reports = append(reports, BuildPlayerReport(data, p))
	}
	return reports
}

func breakdown(table *stats.FreqTable, resolver *stats.DataStore) []BreakdownEntry {
	var out []BreakdownEntry
	for _, entry := range table.Sorted() {
		if entry.Key == stats.NoneKey {
			continue
		}
		name := entry.Key
		if resolver != nil {
			name = resolver.PlayerName(entry.Key)
		}
		out = append(out, BreakdownEntry{Name: name, Count: entry.Count})
	}
	return out
}
