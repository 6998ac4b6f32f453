package replay

import "time"

// EventType enumerates the log event kinds the replayer understands.
type EventType string

const (
	EventKill       EventType = "kill"
	EventTeamkill   EventType = "teamkill"
	EventSuicide    EventType = "suicide"
	EventJoin       EventType = "join"
	EventLeave      EventType = "leave"
	EventTeamSwitch EventType = "team_switch"
	EventMatchEnded EventType = "match_ended"
)

// Event is one materialized server log line, as supplied by the capture
// collaborator. Target fields are empty for non-interaction events; the
// message field only carries payload on match_ended events.
type Event struct {
	Time time.Time `json:"event_time"`
	Type EventType `json:"type"`

	ActorID      string `json:"actor_id,omitempty"`
	ActorName    string `json:"actor_name,omitempty"`
	ActorFaction string `json:"actor_faction,omitempty"`

	TargetID      string `json:"target_id,omitempty"`
	TargetName    string `json:"target_name,omitempty"`
	TargetFaction string `json:"target_faction,omitempty"`

	Weapon  string `json:"weapon,omitempty"`
	Message string `json:"message,omitempty"`

	// Only set on team_switch events. Both set means the switch was
	// ambiguous (the player appeared on both sides).
	OldFaction string `json:"old_faction,omitempty"`
	NewFaction string `json:"new_faction,omitempty"`
}

// Range describes the window a match should be reconstructed over. Start and
// End, when set, bound the playtime window; zero values fall back to the
// first and last event timestamps. Duration, when non-zero, overrides the
// span observed in the events. MapName is carried into the resulting match
// record.
type Range struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
	MapName  string
}
