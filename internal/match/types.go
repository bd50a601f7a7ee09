package match

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrTeamsNotSet is returned when a score mutation arrives before the match
// teams are recorded.
var ErrTeamsNotSet = errors.New("match teams not set")

// ErrUnknownTeam is returned when a goal names a team that is in neither
// side of the score row.
var ErrUnknownTeam = errors.New("team is not in this match")

// store handles all database operations for the match record.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// EventKind classifies match record events.
type EventKind string

const (
	EventGoal         EventKind = "GOAL"
	EventCard         EventKind = "CARD"
	EventMarker       EventKind = "MARKER"
	EventSubstitution EventKind = "SUBSTITUTION"
)

// CardType is the disciplinary card colour.
type CardType string

const (
	CardYellow CardType = "YELLOW"
	CardRed    CardType = "RED"
)

// Event is one row of the referee's match event log.
type Event struct {
	ID          string    `json:"id"`
	Kind        EventKind `json:"kind"`
	TeamID      string    `json:"team_id,omitempty"`
	PlayerID    int       `json:"player_id,omitempty"`
	PlayerName  string    `json:"player_name,omitempty"`
	AssistID    *int      `json:"assist_id,omitempty"`
	AssistName  *string   `json:"assist_name,omitempty"`
	CardType    CardType  `json:"card_type,omitempty"`
	Description string    `json:"description"`
	MatchSecond int       `json:"match_second"`
	CreatedAt   int64     `json:"created_at"`
}

// Goal captures a scoring event as submitted by the referee.
type Goal struct {
	TeamID      string  `json:"team_id"`
	ScorerID    int     `json:"scorer_id"`
	ScorerName  string  `json:"scorer_name"`
	AssistID    *int    `json:"assist_id,omitempty"`
	AssistName  *string `json:"assist_name,omitempty"`
	MatchSecond int     `json:"match_second"`
}

// Card captures a disciplinary event.
type Card struct {
	TeamID      string   `json:"team_id"`
	PlayerID    int      `json:"player_id"`
	PlayerName  string   `json:"player_name"`
	Type        CardType `json:"type"`
	MatchSecond int      `json:"match_second"`
}

// Score is the live scoreboard.
type Score struct {
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	Home       int    `json:"home"`
	Away       int    `json:"away"`
}
