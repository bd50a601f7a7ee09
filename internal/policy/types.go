package policy

import "github.com/noompupp/paknam-match-tracker/internal/tracker"

// AlertKind identifies what a policy alert is about.
type AlertKind string

const (
	// AlertHalfLimitWarning: an S-Class player is approaching the per-half cap.
	AlertHalfLimitWarning AlertKind = "HALF_LIMIT_WARNING"
	// AlertHalfLimitExceeded: an S-Class player is over the per-half cap and
	// must be substituted immediately.
	AlertHalfLimitExceeded AlertKind = "HALF_LIMIT_EXCEEDED"
	// AlertMinimumInsufficient: a Starter will not reach the minimum playing
	// time in the remaining match time.
	AlertMinimumInsufficient AlertKind = "MINIMUM_INSUFFICIENT"
	// AlertFieldCeiling: more than the allowed number of players are on the
	// field. Always critical, role-independent.
	AlertFieldCeiling AlertKind = "FIELD_CEILING_BREACH"
)

// Severity of an alert.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is a projection of the current tracker state, not a one-shot event:
// the same snapshot always yields the same alert set.
type Alert struct {
	Kind          AlertKind    `json:"kind"`
	Severity      Severity     `json:"severity"`
	PlayerID      int          `json:"player_id,omitempty"`
	PlayerName    string       `json:"player_name,omitempty"`
	Role          tracker.Role `json:"role,omitempty"`
	Seconds       int          `json:"seconds,omitempty"`
	NeededSeconds int          `json:"needed_seconds,omitempty"`
	Message       string       `json:"message"`
}

// Config holds the role time thresholds. All values are seconds.
type Config struct {
	HalfLength         int // one half of the match
	MatchLength        int // full match
	SClassHalfLimit    int // hard per-half cap for S-Class players
	SClassHalfWarning  int // warn threshold for S-Class players
	StarterMinimum     int // minimum total time a Starter must reach
	StarterFinalWindow int // remaining-time window in which the minimum is checked
}

// DefaultConfig is the 7-a-side ruleset: 25-minute halves, S-Class capped at
// 20 minutes per half with a warning at 16, Starters owed 10 minutes total
// checked over the last 5.
func DefaultConfig() Config {
	return Config{
		HalfLength:         1500,
		MatchLength:        3000,
		SClassHalfLimit:    1200,
		SClassHalfWarning:  960,
		StarterMinimum:     600,
		StarterFinalWindow: 300,
	}
}
