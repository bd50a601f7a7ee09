package tracker

// Pure validation rules over a player list. These functions never mutate
// their inputs and never return errors; they return structured results the
// engine checks before touching any record.

// CountValidation is the result of ValidatePlayerCount.
type CountValidation struct {
	IsValid     bool `json:"is_valid"`
	ActiveCount int  `json:"active_count"`
}

// ValidatePlayerCount checks the on-field ceiling.
func ValidatePlayerCount(players []Player) CountValidation {
	active := 0
	for i := range players {
		if players[i].Playing {
			active++
		}
	}
	return CountValidation{IsValid: active <= MaxFieldPlayers, ActiveCount: active}
}

// TeamLock reports which team, if any, currently owns the field. The lock is
// keyed by the stable team id; the display name rides along for messages.
type TeamLock struct {
	IsLocked bool   `json:"is_locked"`
	TeamID   string `json:"team_id,omitempty"`
	TeamName string `json:"team_name,omitempty"`
}

// ValidateTeamLock determines the team-lock state: locked when every active
// player shares one team id.
func ValidateTeamLock(players []Player) TeamLock {
	var lock TeamLock
	for i := range players {
		p := &players[i]
		if !p.Playing {
			continue
		}
		if !lock.IsLocked {
			lock = TeamLock{IsLocked: true, TeamID: p.TeamID, TeamName: p.TeamName}
			continue
		}
		if p.TeamID != lock.TeamID {
			// Mixed teams on field: no single lock holder.
			return TeamLock{}
		}
	}
	return lock
}

// RemovalCheck is the result of CanRemovePlayer and CanSubPlayerOut.
type RemovalCheck struct {
	CanRemove bool   `json:"can_remove"`
	Reason    string `json:"reason,omitempty"`
}

// CanRemovePlayer checks whether a tracked player may be deleted from the
// tracker. The last-active-player guard is explicit and caller-controlled.
func CanRemovePlayer(id int, players []Player, guardLastActive bool) RemovalCheck {
	var found *Player
	for i := range players {
		if players[i].ID == id {
			found = &players[i]
			break
		}
	}
	if found == nil {
		return RemovalCheck{Reason: "player is not tracked"}
	}
	if guardLastActive && found.Playing && ValidatePlayerCount(players).ActiveCount == 1 {
		return RemovalCheck{Reason: "cannot remove the last player on the field"}
	}
	return RemovalCheck{CanRemove: true}
}

// AddCheck is the result of CanSubPlayerIn.
type AddCheck struct {
	CanAdd bool   `json:"can_add"`
	Reason string `json:"reason,omitempty"`
}

// CanSubPlayerIn checks whether a roster candidate may join the field
// directly. A "field is full" rejection signals the caller that the
// substitution machinery must take over, not that the request is invalid.
func CanSubPlayerIn(c Candidate, players []Player) AddCheck {
	for i := range players {
		if players[i].ID == c.ID {
			return AddCheck{Reason: "player is already tracked"}
		}
	}
	if lock := ValidateTeamLock(players); lock.IsLocked && lock.TeamID != c.TeamID {
		return AddCheck{Reason: "only " + lock.TeamName + " players may be on the field"}
	}
	if count := ValidatePlayerCount(players); count.ActiveCount >= MaxFieldPlayers {
		return AddCheck{Reason: "field is full"}
	}
	return AddCheck{CanAdd: true}
}

// CanSubPlayerOut checks whether an on-field player may be toggled off.
func CanSubPlayerOut(id int, players []Player) RemovalCheck {
	var found *Player
	for i := range players {
		if players[i].ID == id {
			found = &players[i]
			break
		}
	}
	if found == nil {
		return RemovalCheck{Reason: "player is not tracked"}
	}
	if !found.Playing {
		return RemovalCheck{Reason: "player is not on the field"}
	}
	if ValidatePlayerCount(players).ActiveCount == 1 {
		return RemovalCheck{Reason: "cannot remove the last player on the field"}
	}
	return RemovalCheck{CanRemove: true}
}

// ActionType is the kind of toggle request submitted by the caller.
type ActionType string

const (
	ActionIn     ActionType = "in"
	ActionOut    ActionType = "out"
	ActionToggle ActionType = "toggle"
)

// SubstitutionValidation is the central dispatch result: whether the action
// can be applied directly or must go through the substitution flow.
type SubstitutionValidation struct {
	CanSubIn             bool   `json:"can_sub_in"`
	CanSubOut            bool   `json:"can_sub_out"`
	RequiresSubstitution bool   `json:"requires_substitution"`
	Action               string `json:"action"` // "direct" or "substitute"
	Reason               string `json:"reason,omitempty"`
}

// ValidateSubstitution decides, for a toggle/in/out request on a tracked
// player (or a new candidate), whether it is direct, substitution-required,
// or rejected. For a toggle-on at the field ceiling the answer is always
// "substitute"; everything below the ceiling is direct.
func ValidateSubstitution(action ActionType, id int, players []Player, candidate *Candidate) SubstitutionValidation {
	var target *Player
	for i := range players {
		if players[i].ID == id {
			target = &players[i]
			break
		}
	}

	switch action {
	case ActionOut:
		out := CanSubPlayerOut(id, players)
		return SubstitutionValidation{CanSubOut: out.CanRemove, Action: "direct", Reason: out.Reason}

	case ActionIn:
		if candidate == nil {
			return SubstitutionValidation{Action: "direct", Reason: "no candidate supplied"}
		}
		in := CanSubPlayerIn(*candidate, players)
		v := SubstitutionValidation{CanSubIn: in.CanAdd, Action: "direct", Reason: in.Reason}
		if !in.CanAdd && in.Reason == "field is full" {
			v.RequiresSubstitution = true
			v.Action = "substitute"
		}
		return v

	case ActionToggle:
		if target == nil {
			return SubstitutionValidation{Action: "direct", Reason: "player is not tracked"}
		}
		if target.Playing {
			out := CanSubPlayerOut(id, players)
			return SubstitutionValidation{CanSubOut: out.CanRemove, Action: "direct", Reason: out.Reason}
		}
		if lock := ValidateTeamLock(players); lock.IsLocked && lock.TeamID != target.TeamID {
			return SubstitutionValidation{Action: "direct", Reason: "only " + lock.TeamName + " players may be on the field"}
		}
		if ValidatePlayerCount(players).ActiveCount >= MaxFieldPlayers {
			return SubstitutionValidation{
				RequiresSubstitution: true,
				Action:               "substitute",
				Reason:               "field is full",
			}
		}
		return SubstitutionValidation{CanSubIn: true, Action: "direct"}
	}

	return SubstitutionValidation{Action: "direct", Reason: "unknown action"}
}
