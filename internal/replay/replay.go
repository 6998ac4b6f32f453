package replay

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Soxxes/HLLLogUtilities/internal/stats"
)

// ErrEmptyInput is returned when a match is requested from zero events.
var ErrEmptyInput = errors.New("empty event sequence")

// Options tunes a replay. The zero value is usable: no weapon renaming and
// the default logger.
type Options struct {
	// WeaponNames maps raw weapon identifiers to display names. Raw ids
	// absent from the table pass through verbatim with a warning.
	WeaponNames map[string]string
	// Logger receives non-fatal anomalies. Nil means slog.Default().
	Logger *slog.Logger
}

// ReplayMatch folds a finite event sequence into one match record. The
// sequence may arrive in reverse chronological order; direction is detected
// from the first and last timestamps and a reversed copy is processed in
// that case. The caller's slice is never modified. Session windows are
// bounded by the range's start and end when set, so open playtime sessions
// extrapolate to the requested window rather than the last observed event;
// zero range bounds fall back to the observed span.
func ReplayMatch(events []Event, rng Range, opts Options) (*stats.MatchRecord, error) {
	if len(events) == 0 {
		return nil, ErrEmptyInput
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	first, last := events[0].Time, events[len(events)-1].Time
	if last.Before(first) {
		first, last = last, first
		reversed := make([]Event, len(events))
		for i, ev := range events {
			reversed[len(events)-1-i] = ev
		}
		events = reversed
	}

	start, end := first, last
	if !rng.Start.IsZero() {
		start = rng.Start
	}
	if !rng.End.IsZero() {
		end = rng.End
	}

	r := &replayer{
		accums: make(map[string]*stats.PlayerStats),
		start:  start,
		end:    end,
		opts:   opts,
		logger: logger,
	}

	var matchEnded *Event
	for i := range events {
		ev := &events[i]
		if ev.Type == EventMatchEnded {
			matchEnded = ev
		}
		r.dispatch(ev)
	}

	duration := rng.Duration
	if duration == 0 {
		duration = last.Sub(first)
	}

	score1, score2 := 0, 0
	if matchEnded != nil {
		score1, score2 = r.parseScores(matchEnded.Message)
	}

	data := stats.NewDataStore(duration, r.order)
	return stats.NewMatchRecord(data, rng.MapName, score1, score2), nil
}

type replayer struct {
	accums map[string]*stats.PlayerStats
	order  []*stats.PlayerStats
	start  time.Time
	end    time.Time
	opts   Options
	logger *slog.Logger
}

func (r *replayer) player(id, name string) *stats.PlayerStats {
	p, ok := r.accums[id]
	if !ok {
		p = stats.NewPlayerStats(id, name, r.start, r.end)
		r.accums[id] = p
		r.order = append(r.order, p)
		return p
	}
	p.SeeName(name)
	return p
}

func (r *replayer) weapon(raw string) string {
	if raw == "" || len(r.opts.WeaponNames) == 0 {
		return raw
	}
	if mapped, ok := r.opts.WeaponNames[raw]; ok {
		return mapped
	}
	r.logger.Warn("weapon is not mapped", "weapon", raw)
	return raw
}

// eventFaction resolves a faction field for per-event attribution. A missing
// value attributes to Any, matching the side-split counters staying untouched.
func eventFaction(s string) stats.Faction {
	if f := stats.ParseFaction(s); f != stats.FactionNone {
		return f
	}
	return stats.FactionAny
}

func (r *replayer) dispatch(ev *Event) {
	actor := r.player(ev.ActorID, ev.ActorName)

	switch ev.Type {
	case EventKill, EventTeamkill:
		actorFaction := eventFaction(ev.ActorFaction)
		targetFaction := eventFaction(ev.TargetFaction)
		weapon := r.weapon(ev.Weapon)

		// Widen both sides before counting so faction-split totals are
		// attributed even when membership is only revealed late.
		actor.WidenFaction(actorFaction)

		var target *stats.PlayerStats
		if ev.TargetID != "" || ev.TargetName != "" {
			target = r.player(ev.TargetID, ev.TargetName)
			target.WidenFaction(targetFaction)
		}

		if ev.Type == EventKill {
			actor.RecordKill(ev.TargetID, weapon, actorFaction)
		} else {
			actor.RecordTeamkill(ev.TargetID)
		}
		if target != nil {
			target.RecordDeath(ev.ActorID, weapon, targetFaction)
		}

	case EventSuicide:
		faction := eventFaction(ev.ActorFaction)
		actor.WidenFaction(faction)
		actor.RecordSuicide(faction)

	case EventJoin:
		actor.Join(ev.Time)

	case EventLeave:
		if !actor.Leave(ev.Time) {
			r.logger.Warn("player left but was already offline",
				"player_id", ev.ActorID, "player_name", ev.ActorName)
		}

	case EventTeamSwitch:
		switch {
		case ev.OldFaction != "" && ev.NewFaction != "":
			actor.WidenFaction(stats.FactionAny)
		case ev.NewFaction != "":
			actor.WidenFaction(eventFaction(ev.NewFaction))
		}

	case EventMatchEnded:
		// Terminal event; its payload is handled after the fold.

	default:
		r.logger.Warn("unknown event type skipped", "type", string(ev.Type))
	}
}

// parseScores extracts the two faction scores from a match-ended payload of
// the form "2 - 1". Malformed payloads fail soft to a 0-0 draw.
func (r *replayer) parseScores(message string) (int, int) {
	parts := strings.Split(message, " - ")
	if len(parts) == 2 {
		s1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		s2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 == nil && err2 == nil {
			return s1, s2
		}
	}
	r.logger.Warn("malformed match-end score payload, recording a draw", "message", message)
	return 0, 0
}
