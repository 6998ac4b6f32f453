package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/Soxxes/HLLLogUtilities/internal/storage"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"sessions"},
	Short:   "List all stored capture sessions",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	sessions, err := db.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stdout, "No sessions stored yet. Run 'hllstats import <events.jsonl>' to add one.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("ID", "NAME", "MAP", "START", "DURATION")
	for _, s := range sessions {
		table.Append(
			strconv.FormatInt(s.ID, 10),
			s.Name,
			s.MapName,
			s.Start.Format(time.RFC3339),
			s.Duration().Round(time.Second).String(),
		)
	}
	table.Render()
	return nil
}
