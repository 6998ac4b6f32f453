package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Soxxes/HLLLogUtilities/internal/mapping"
	"github.com/Soxxes/HLLLogUtilities/internal/replay"
	"github.com/Soxxes/HLLLogUtilities/internal/report"
	"github.com/Soxxes/HLLLogUtilities/internal/stats"
	"github.com/Soxxes/HLLLogUtilities/internal/storage"
)

var (
	exportFrom     string
	exportTo       string
	exportDuration time.Duration
	exportMap      string
	exportMappings string
	exportJSON     bool
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id> [session-id...]",
	Short: "Replay stored sessions into a scoreboard",
	Long: `Replay the log events of one or more capture sessions and render the
resulting statistics. A single session produces a match scoreboard; several
sessions are aggregated into a cross-match report.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "only replay events at or after this RFC3339 time")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "only replay events before this RFC3339 time")
	exportCmd.Flags().DurationVar(&exportDuration, "duration", 0, "override the match duration")
	exportCmd.Flags().StringVar(&exportMap, "map", "", "override the map name")
	exportCmd.Flags().StringVar(&exportMappings, "mappings", "", "TOML file overriding the weapon category tables")
	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "emit structured per-player records instead of tables")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "write the report to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	tables := mapping.Default()
	if exportMappings != "" {
		var err error
		if tables, err = mapping.Load(exportMappings); err != nil {
			return err
		}
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	from, err := parseTimeFlag(exportFrom)
	if err != nil {
		return fmt.Errorf("parse --from: %w", err)
	}
	to, err := parseTimeFlag(exportTo)
	if err != nil {
		return fmt.Errorf("parse --to: %w", err)
	}

	var matches []*stats.MatchRecord
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", arg)
		}
		match, err := replaySession(db, id, from, to, tables)
		if err != nil {
			return fmt.Errorf("session %d: %w", id, err)
		}
		matches = append(matches, match)
	}

	var output string
	switch {
	case exportJSON:
		data := matches[0].DataStore
		if len(matches) > 1 {
			data = stats.NewMatchGroup(matches...).Union()
		}
		raw, err := json.MarshalIndent(report.PlayerReports(data), "", "  ")
		if err != nil {
			return fmt.Errorf("encode reports: %w", err)
		}
		output = string(raw)
	case len(matches) == 1:
		output = report.Scoreboard(matches[0], tables)
	default:
		output = report.GroupScoreboard(stats.NewMatchGroup(matches...), tables)
	}

	if exportOut != "" {
		if err := os.WriteFile(exportOut, []byte(output+"\n"), 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Report written to %s\n", exportOut)
		return nil
	}
	fmt.Fprintln(os.Stdout, output)
	return nil
}

func replaySession(db *storage.DB, id int64, from, to *time.Time, tables mapping.Tables) (*stats.MatchRecord, error) {
	session, err := db.GetSession(id)
	if err != nil {
		return nil, err
	}
	events, err := db.GetEvents(id, from, to)
	if err != nil {
		return nil, err
	}

	mapName := session.MapName
	if exportMap != "" {
		mapName = exportMap
	}

	rng := replay.Range{
		Start:    session.Start,
		End:      session.End,
		Duration: exportDuration,
		MapName:  mapName,
	}
	// A from/to slice narrows the replay window with it, so playtime does
	// not extrapolate past the requested cut.
	if from != nil {
		rng.Start = *from
	}
	if to != nil {
		rng.End = *to
	}
	return replay.ReplayMatch(events, rng, replay.Options{
		WeaponNames: tables.WeaponNames(),
		Logger:      slog.Default(),
	})
}

func parseTimeFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
