package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Soxxes/HLLLogUtilities/internal/replay"
	"github.com/Soxxes/HLLLogUtilities/internal/storage"
)

var (
	importName string
	importMap  string
)

var importCmd = &cobra.Command{
	Use:   "import <events.jsonl>",
	Short: "Import a log event file into a new capture session",
	Long: `Read server log events from a JSON-lines file (one event object per line)
and store them as a new capture session. The session window defaults to the
span between the first and last event.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "session name (defaults to the file name)")
	importCmd.Flags().StringVar(&importMap, "map", "", "map the session was played on")
}

func runImport(cmd *cobra.Command, args []string) error {
	eventsPath := args[0]

	events, err := readEvents(eventsPath)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	if len(events) == 0 {
		return fmt.Errorf("no events in %s", eventsPath)
	}

	start, end := events[0].Time, events[0].Time
	for _, ev := range events {
		if ev.Time.Before(start) {
			start = ev.Time
		}
		if ev.Time.After(end) {
			end = ev.Time
		}
	}

	name := importName
	if name == "" {
		name = filepath.Base(eventsPath)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	id, err := db.CreateSession(storage.Session{
		Name:    name,
		MapName: importMap,
		Start:   start,
		End:     end,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := db.InsertEvents(id, events); err != nil {
		return fmt.Errorf("store events: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Imported %d events into session %d (%s, %s to %s)\n",
		len(events), id, name,
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	return nil
}

func readEvents(path string) ([]replay.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var events []replay.Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev replay.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}
