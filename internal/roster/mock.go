package roster

import (
	"fmt"
	"sync"
)

// Mock is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu      sync.Mutex
	teams   map[string]Team
	players map[int]Player

	UpsertTeamCalls    []Team
	UpsertPlayersCalls [][]Player
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		teams:   make(map[string]Team),
		players: make(map[int]Player),
	}
}

func (m *Mock) UpsertTeam(team Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[team.ID] = team
	m.UpsertTeamCalls = append(m.UpsertTeamCalls, team)
	return nil
}

func (m *Mock) UpsertPlayers(players []Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range players {
		m.players[p.ID] = p
	}
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	return nil
}

func (m *Mock) Teams() ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Team
	for _, t := range m.teams {
		out = append(out, t)
	}
	return out, nil
}

func (m *Mock) TeamPlayers(teamID string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Player
	for _, p := range m.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Mock) Player(id int) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return nil, fmt.Errorf("roster player %d not found", id)
	}
	return &p, nil
}

func (m *Mock) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams = make(map[string]Team)
	m.players = make(map[int]Player)
	return nil
}
