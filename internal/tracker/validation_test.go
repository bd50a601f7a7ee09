package tracker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fieldOf(teamID string, active, benched int) []Player {
	var players []Player
	for i := 0; i < active; i++ {
		players = append(players, Player{
			ID:       i + 1,
			Name:     fmt.Sprintf("On %d", i+1),
			TeamID:   teamID,
			TeamName: "Team " + teamID,
			Playing:  true,
		})
	}
	for i := 0; i < benched; i++ {
		players = append(players, Player{
			ID:           100 + i,
			Name:         fmt.Sprintf("Off %d", i+1),
			TeamID:       teamID,
			TeamName:     "Team " + teamID,
			TotalSeconds: 60,
		})
	}
	return players
}

func TestValidatePlayerCount(t *testing.T) {
	tests := []struct {
		name    string
		players []Player
		active  int
		valid   bool
	}{
		{"empty", nil, 0, true},
		{"below ceiling", fieldOf("a", 6, 2), 6, true},
		{"at ceiling", fieldOf("a", 7, 0), 7, true},
		{"over ceiling", fieldOf("a", 8, 0), 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePlayerCount(tt.players)
			assert.Equal(t, tt.active, got.ActiveCount)
			assert.Equal(t, tt.valid, got.IsValid)
		})
	}
}

func TestValidateTeamLock(t *testing.T) {
	t.Run("no active players means no lock", func(t *testing.T) {
		players := fieldOf("a", 0, 3)
		assert.False(t, ValidateTeamLock(players).IsLocked)
	})

	t.Run("single team locks the field", func(t *testing.T) {
		lock := ValidateTeamLock(fieldOf("a", 3, 0))
		assert.True(t, lock.IsLocked)
		assert.Equal(t, "a", lock.TeamID)
		assert.Equal(t, "Team a", lock.TeamName)
	})

	t.Run("mixed teams yield no lock holder", func(t *testing.T) {
		players := append(fieldOf("a", 2, 0), Player{ID: 50, TeamID: "b", Playing: true})
		lock := ValidateTeamLock(players)
		assert.False(t, lock.IsLocked)
		assert.Empty(t, lock.TeamID)
	})

	t.Run("benched players do not affect the lock", func(t *testing.T) {
		players := append(fieldOf("a", 2, 0), Player{ID: 50, TeamID: "b"})
		lock := ValidateTeamLock(players)
		assert.True(t, lock.IsLocked)
		assert.Equal(t, "a", lock.TeamID)
	})

	t.Run("lock is keyed by team id, not display name", func(t *testing.T) {
		players := []Player{
			{ID: 1, TeamID: "a", TeamName: "Reds", Playing: true},
			{ID: 2, TeamID: "a", TeamName: "Reds (updated)", Playing: true},
		}
		assert.True(t, ValidateTeamLock(players).IsLocked)
	})
}

func TestCanSubPlayerIn(t *testing.T) {
	t.Run("rejects duplicate ids", func(t *testing.T) {
		players := fieldOf("a", 3, 0)
		check := CanSubPlayerIn(Candidate{ID: 1, TeamID: "a"}, players)
		assert.False(t, check.CanAdd)
		assert.Equal(t, "player is already tracked", check.Reason)
	})

	t.Run("rejects cross-team candidates while locked", func(t *testing.T) {
		players := fieldOf("a", 3, 0)
		check := CanSubPlayerIn(Candidate{ID: 99, TeamID: "b"}, players)
		assert.False(t, check.CanAdd)
		assert.Equal(t, "only Team a players may be on the field", check.Reason)
	})

	t.Run("duplicate id wins over team lock", func(t *testing.T) {
		players := fieldOf("a", 3, 0)
		check := CanSubPlayerIn(Candidate{ID: 1, TeamID: "b"}, players)
		assert.Equal(t, "player is already tracked", check.Reason)
	})

	t.Run("rejects when the field is full", func(t *testing.T) {
		players := fieldOf("a", 7, 0)
		check := CanSubPlayerIn(Candidate{ID: 99, TeamID: "a"}, players)
		assert.False(t, check.CanAdd)
		assert.Equal(t, "field is full", check.Reason)
	})

	t.Run("allows a same-team candidate below the ceiling", func(t *testing.T) {
		players := fieldOf("a", 6, 0)
		check := CanSubPlayerIn(Candidate{ID: 99, TeamID: "a"}, players)
		assert.True(t, check.CanAdd)
		assert.Empty(t, check.Reason)
	})

	t.Run("allows any team on an empty field", func(t *testing.T) {
		check := CanSubPlayerIn(Candidate{ID: 1, TeamID: "b"}, nil)
		assert.True(t, check.CanAdd)
	})
}

func TestCanSubPlayerOut(t *testing.T) {
	t.Run("rejects untracked players", func(t *testing.T) {
		check := CanSubPlayerOut(99, fieldOf("a", 3, 0))
		assert.False(t, check.CanRemove)
		assert.Equal(t, "player is not tracked", check.Reason)
	})

	t.Run("rejects players already off the field", func(t *testing.T) {
		check := CanSubPlayerOut(100, fieldOf("a", 3, 1))
		assert.False(t, check.CanRemove)
		assert.Equal(t, "player is not on the field", check.Reason)
	})

	t.Run("rejects the last on-field player", func(t *testing.T) {
		check := CanSubPlayerOut(1, fieldOf("a", 1, 3))
		assert.False(t, check.CanRemove)
		assert.Equal(t, "cannot remove the last player on the field", check.Reason)
	})

	t.Run("allows an ordinary toggle off", func(t *testing.T) {
		check := CanSubPlayerOut(1, fieldOf("a", 2, 0))
		assert.True(t, check.CanRemove)
	})
}

func TestCanRemovePlayer(t *testing.T) {
	t.Run("guard blocks removing the sole active player", func(t *testing.T) {
		check := CanRemovePlayer(1, fieldOf("a", 1, 2), true)
		assert.False(t, check.CanRemove)
		assert.Equal(t, "cannot remove the last player on the field", check.Reason)
	})

	t.Run("guard off allows removing the sole active player", func(t *testing.T) {
		check := CanRemovePlayer(1, fieldOf("a", 1, 2), false)
		assert.True(t, check.CanRemove)
	})

	t.Run("benched players are always removable", func(t *testing.T) {
		check := CanRemovePlayer(100, fieldOf("a", 1, 1), true)
		assert.True(t, check.CanRemove)
	})
}

func TestValidateSubstitution(t *testing.T) {
	t.Run("toggle-on below the ceiling is direct", func(t *testing.T) {
		players := fieldOf("a", 6, 1)
		v := ValidateSubstitution(ActionToggle, 100, players, nil)
		assert.True(t, v.CanSubIn)
		assert.False(t, v.RequiresSubstitution)
		assert.Equal(t, "direct", v.Action)
	})

	t.Run("toggle-on at the ceiling requires a substitution", func(t *testing.T) {
		players := fieldOf("a", 7, 1)
		v := ValidateSubstitution(ActionToggle, 100, players, nil)
		assert.True(t, v.RequiresSubstitution)
		assert.Equal(t, "substitute", v.Action)
		assert.Equal(t, "field is full", v.Reason)
	})

	t.Run("toggle-on against the team lock is rejected outright", func(t *testing.T) {
		players := append(fieldOf("a", 7, 0), Player{ID: 200, TeamID: "b", TeamName: "Team b"})
		v := ValidateSubstitution(ActionToggle, 200, players, nil)
		assert.False(t, v.RequiresSubstitution)
		assert.Equal(t, "only Team a players may be on the field", v.Reason)
	})

	t.Run("new candidate at the ceiling requires a substitution", func(t *testing.T) {
		players := fieldOf("a", 7, 0)
		v := ValidateSubstitution(ActionIn, 0, players, &Candidate{ID: 99, TeamID: "a"})
		assert.True(t, v.RequiresSubstitution)
		assert.Equal(t, "substitute", v.Action)
	})

	t.Run("toggle-off delegates to the sub-out check", func(t *testing.T) {
		players := fieldOf("a", 2, 0)
		v := ValidateSubstitution(ActionToggle, 1, players, nil)
		assert.True(t, v.CanSubOut)
		assert.Equal(t, "direct", v.Action)
	})
}
