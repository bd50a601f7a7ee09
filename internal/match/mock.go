package match

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

// Mock is a mock implementation of the MatchStore interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu     sync.Mutex
	score  Score
	events []Event
	times  map[string][]tracker.Player

	AddGoalCalls         []Goal
	AddCardCalls         []Card
	LogSubstitutionCalls []tracker.SubstitutionResult
	SavePlayerTimesCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		times: make(map[string][]tracker.Player),
	}
}

func (m *Mock) SetTeams(homeTeamID, awayTeamID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score.HomeTeamID = homeTeamID
	m.score.AwayTeamID = awayTeamID
	return nil
}

func (m *Mock) Score() (Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *Mock) SetScore(home, away int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score.Home = home
	m.score.Away = away
	return nil
}

func (m *Mock) AddGoal(goal Goal) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddGoalCalls = append(m.AddGoalCalls, goal)
	if m.score.HomeTeamID == "" && m.score.AwayTeamID == "" {
		return nil, ErrTeamsNotSet
	}
	switch goal.TeamID {
	case m.score.HomeTeamID:
		m.score.Home++
	case m.score.AwayTeamID:
		m.score.Away++
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, goal.TeamID)
	}
	ev := Event{
		ID:          uuid.NewString(),
		Kind:        EventGoal,
		TeamID:      goal.TeamID,
		PlayerID:    goal.ScorerID,
		PlayerName:  goal.ScorerName,
		Description: fmt.Sprintf("Goal by %s", goal.ScorerName),
		MatchSecond: goal.MatchSecond,
	}
	m.events = append(m.events, ev)
	return &ev, nil
}

func (m *Mock) AddCard(card Card) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCardCalls = append(m.AddCardCalls, card)
	ev := Event{
		ID:          uuid.NewString(),
		Kind:        EventCard,
		TeamID:      card.TeamID,
		PlayerID:    card.PlayerID,
		PlayerName:  card.PlayerName,
		CardType:    card.Type,
		Description: fmt.Sprintf("%s card for %s", card.Type, card.PlayerName),
		MatchSecond: card.MatchSecond,
	}
	m.events = append(m.events, ev)
	return &ev, nil
}

func (m *Mock) AddMarker(description string, matchSecond int) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev := Event{
		ID:          uuid.NewString(),
		Kind:        EventMarker,
		Description: description,
		MatchSecond: matchSecond,
	}
	m.events = append(m.events, ev)
	return &ev, nil
}

func (m *Mock) LogSubstitution(res tracker.SubstitutionResult) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogSubstitutionCalls = append(m.LogSubstitutionCalls, res)
	ev := Event{
		ID:          uuid.NewString(),
		Kind:        EventSubstitution,
		TeamID:      res.TeamID,
		Description: fmt.Sprintf("%s off, %s on", res.OutgoingName, res.IncomingName),
		MatchSecond: res.MatchSecond,
	}
	m.events = append(m.events, ev)
	return &ev, nil
}

func (m *Mock) Events() ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *Mock) SavePlayerTimes(sessionID string, players []tracker.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]tracker.Player, len(players))
	copy(cp, players)
	m.times[sessionID] = cp
	m.SavePlayerTimesCalls = append(m.SavePlayerTimesCalls, sessionID)
	return nil
}

func (m *Mock) LoadPlayerTimes(sessionID string) ([]tracker.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]tracker.Player, len(m.times[sessionID]))
	copy(cp, m.times[sessionID])
	return cp, nil
}

func (m *Mock) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = Score{}
	m.events = nil
	m.times = make(map[string][]tracker.Player)
	return nil
}
