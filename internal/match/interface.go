package match

import "github.com/noompupp/paknam-match-tracker/internal/tracker"

// MatchStore defines the interface for the persisted match record: score,
// event log, and player-time snapshots.
type MatchStore interface {
	SetTeams(homeTeamID, awayTeamID string) error
	Score() (Score, error)
	SetScore(home, away int) error

	AddGoal(goal Goal) (*Event, error)
	AddCard(card Card) (*Event, error)
	AddMarker(description string, matchSecond int) (*Event, error)
	LogSubstitution(res tracker.SubstitutionResult) (*Event, error)
	Events() ([]Event, error)

	SavePlayerTimes(sessionID string, players []tracker.Player) error
	LoadPlayerTimes(sessionID string) ([]tracker.Player, error)

	Clear() error
}
