package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Soxxes/HLLLogUtilities/internal/mapping"
	"github.com/Soxxes/HLLLogUtilities/internal/stats"
)

// Scoreboard composes the full text report for one match: metadata header,
// aggregate totals, the per-faction table, the ranked player table, and the
// weapon and vehicle breakdowns.
func Scoreboard(match *stats.MatchRecord, tables mapping.Tables) string {
	mapName := match.MapName
	if mapName == "" {
		mapName = "Unknown"
	}

	lines := []string{
		fmt.Sprintf("Map: %s", mapName),
		fmt.Sprintf("Score: ALLIES (%d - %d) AXIS", match.Score1, match.Score2),
		fmt.Sprintf("Duration: %d minutes", int(match.Duration().Minutes()+0.5)),
		"",
		fmt.Sprintf("Players: %d", match.NumPlayers()),
		fmt.Sprintf("Deaths: %d", match.TotalDeaths()),
		fmt.Sprintf("  Kills: %d", match.TotalKills()),
		fmt.Sprintf("  Teamkills: %d", match.TotalTeamkills()),
		fmt.Sprintf("  Suicides: %d", match.TotalSuicides()),
		"",
		FactionTable(match.DataStore),
		"",
		PlayerTable(match.DataStore, true, tables),
		"",
		"",
		WeaponBreakdown(match.DataStore, tables),
	}
	return strings.Join(lines, "\n")
}

// GroupScoreboard composes the cross-match report for a group of matches.
func GroupScoreboard(group *stats.MatchGroup, tables mapping.Tables) string {
	union := group.Union()

	lines := []string{
		fmt.Sprintf("Matches: %d", group.NumMatchesPlayed()),
		fmt.Sprintf("Total match length: %d minutes", int(group.TotalMatchLength().Minutes()+0.5)),
		fmt.Sprintf("Average match length: %d minutes", int(group.AvgMatchLength().Minutes()+0.5)),
	}
	if shortest := group.ShortestMatch(); shortest != nil {
		name := shortest.MapName
		if name == "" {
			name = "Unknown"
		}
		lines = append(lines, fmt.Sprintf("Shortest match: %s (%d minutes)",
			name, int(shortest.Duration().Minutes()+0.5)))
	}
	lines = append(lines,
		fmt.Sprintf("Winners with positive KDR: %d", group.NumWinnersPositiveKDR()),
		fmt.Sprintf("Winner kills/deaths: %d/%d", group.WinnerKills(), group.WinnerDeaths()),
		fmt.Sprintf("Loser kills/deaths: %d/%d", group.LoserKills(), group.LoserDeaths()),
		"",
		fmt.Sprintf("Players: %d", union.NumPlayers()),
		fmt.Sprintf("Deaths: %d", union.TotalDeaths()),
		fmt.Sprintf("  Kills: %d", union.TotalKills()),
		fmt.Sprintf("  Teamkills: %d", union.TotalTeamkills()),
		fmt.Sprintf("  Suicides: %d", union.TotalSuicides()),
		"",
		FactionTable(union),
		"",
		PlayerTable(union, false, tables),
		"",
		"",
		WeaponBreakdown(union, tables),
	)
	return strings.Join(lines, "\n")
}

// FactionTable renders total kills, deaths, and KDR per faction.
func FactionTable(data *stats.DataStore) string {
	var b strings.Builder
	table := newTable(&b)
	table.Header("FACTION", "KILLS", "DEATHS", "KDR")
	table.Append("Allies",
		strconv.Itoa(data.TotalAlliedKills()),
		strconv.Itoa(data.TotalAlliedDeaths()),
		floatStr(safeRatio(data.TotalAlliedKills(), data.TotalAlliedDeaths())))
	table.Append("Axis",
		strconv.Itoa(data.TotalAxisKills()),
		strconv.Itoa(data.TotalAxisDeaths()),
		floatStr(safeRatio(data.TotalAxisKills(), data.TotalAxisDeaths())))
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}

// WeaponBreakdown renders three table groups side by side: the overall
// weapon table (with a best-effort teamkill column), the per-faction
// category tables, and the vehicle tables.
func WeaponBreakdown(data *stats.DataStore, tables mapping.Tables) string {
	overall := weaponsTable(data, "", false, true, tables.FactionlessTable(), tables.VehicleWeaponsFactionlessTable())

	basics := strings.Join([]string{
		weaponsTable(data, "WEAPONS USED BY ALLIES", true, false, tables.BasicCategoriesAlliesTable()),
		weaponsTable(data, "WEAPONS USED BY AXIS", true, false, tables.BasicCategoriesAxisTable()),
		factionSideBySideTable(data, tables),
	}, "\n\n\n")

	vehicles := strings.Join([]string{
		weaponsTable(data, "VEHICLES USED", true, false, tables.VehicleClassesTable()),
		weaponsTable(data, "ALLIED VEHICLES", true, false, tables.VehiclesAlliesTable()),
		weaponsTable(data, "AXIS VEHICLES", true, false, tables.VehiclesAxisTable()),
	}, "\n\n\n")

	return sideBySide(18, overall, basics, vehicles)
}

// weaponsTable renders WEAPON/KILLS/RATE rows for the given category fold.
// showTKs adds the teamkill column, but only when the teamkill audit
// reconciles; an unbalanced event stream would make the estimate wrong.
func weaponsTable(data *stats.DataStore, title string, dropUnmapped, showTKs bool, categoryTables ...stats.CategoryTable) string {
	weapons := data.WeaponsKilledWith(dropUnmapped, categoryTables...)
	totalKills := weapons.Total()

	withTKs := showTKs && data.ReconcilesTeamkills()
	var teamkills *stats.FreqTable
	if withTKs {
		teamkills = data.WeaponsTeamkilledWith(dropUnmapped, categoryTables...)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	table := newTable(&b)
	if withTKs {
		table.Header("WEAPON", "KILLS", "RATE", "TKS")
	} else {
		table.Header("WEAPON", "KILLS", "RATE")
	}
	for _, entry := range weapons.Sorted() {
		if entry.Count == 0 {
			continue
		}
		rate := fmt.Sprintf("%s%%", floatStr(percentage(entry.Count, totalKills)))
		if withTKs {
			table.Append(entry.Key, strconv.Itoa(entry.Count), rate, strconv.Itoa(teamkills.Count(entry.Key)))
		} else {
			table.Append(entry.Key, strconv.Itoa(entry.Count), rate)
		}
	}
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}

// factionSideBySideTable renders category kills split by faction.
func factionSideBySideTable(data *stats.DataStore, tables mapping.Tables) string {
	allied := data.WeaponsKilledWith(true, tables.BasicCategoriesAlliesTable())
	axis := data.WeaponsKilledWith(true, tables.BasicCategoriesAxisTable())
	combined := allied.Merge(axis)
	totalKills := combined.Total()

	var b strings.Builder
	b.WriteString("FACTIONS SIDE TO SIDE\n")
	table := newTable(&b)
	table.Header("WEAPON", "ALLIES", "AXIS", "TOTAL", "RATE")
	for _, entry := range combined.Sorted() {
		if entry.Count == 0 {
			continue
		}
		table.Append(entry.Key,
			strconv.Itoa(allied.Count(entry.Key)),
			strconv.Itoa(axis.Count(entry.Key)),
			strconv.Itoa(entry.Count),
			fmt.Sprintf("%s%%", floatStr(percentage(entry.Count, totalKills))))
	}
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}

func newTable(b *strings.Builder) *tablewriter.Table {
	return tablewriter.NewTable(b, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

func safeRatio(kills, deaths int) float64 {
	if deaths == 0 {
		deaths = 1
	}
	return round2f(float64(kills) / float64(deaths))
}

func percentage(n, total int) float64 {
	if total == 0 {
		total = 1
	}
	return round2f(float64(n) * 100 / float64(total))
}

func round2f(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// sideBySide lays text blocks out horizontally, padding every line of a
// block to the block's widest line plus the given spacing.
func sideBySide(spacing int, blocks ...string) string {
	split := make([][]string, len(blocks))
	widths := make([]int, len(blocks))
	height := 0
	for i, block := range blocks {
		split[i] = strings.Split(block, "\n")
		for _, line := range split[i] {
			if len([]rune(line)) > widths[i] {
				widths[i] = len([]rune(line))
			}
		}
		if len(split[i]) > height {
			height = len(split[i])
		}
	}

	var b strings.Builder
	for row := 0; row < height; row++ {
		var line strings.Builder
		for i := range split {
			cell := ""
			if row < len(split[i]) {
				cell = split[i][row]
			}
			if i < len(split)-1 {
				line.WriteString(cell + strings.Repeat(" ", widths[i]+spacing-len([]rune(cell))))
			} else {
				line.WriteString(cell)
			}
		}
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
	}
	return b.String()
}
