package tracker

// Re-entry and forced-substitution rules. A re-entry is a previously-used
// player (TotalSeconds > 0) coming back on; a fresh candidate joining a full
// field is an ordinary "field is full" case, never a forced substitution.

// NeedsForcedSubstitution reports whether toggling the given player on must
// go through the forced-substitution path: they are off, have played before,
// and the field is at the ceiling.
func NeedsForcedSubstitution(p *Player, players []Player) bool {
	if p == nil || p.Playing || p.TotalSeconds == 0 {
		return false
	}
	return ValidatePlayerCount(players).ActiveCount >= MaxFieldPlayers
}

// ReEntryCandidates returns the on-field players eligible to be substituted
// out to make room for a re-entering player.
func ReEntryCandidates(players []Player) []Player {
	var out []Player
	for i := range players {
		if players[i].Playing {
			out = append(out, players[i])
		}
	}
	return out
}

// CanAllowReSubstitution reports whether enough distinct players have been
// used this match that off-field tracked players should be offered as
// substitution candidates alongside brand-new roster players.
func CanAllowReSubstitution(players []Player) bool {
	return len(players) >= ReSubstitutionSquadSize
}

// AvailablePlayers partitions a team roster into substitution candidate
// pools.
type AvailablePlayers struct {
	NewPlayers            []Candidate `json:"new_players"`
	ReSubstitutionPlayers []Player    `json:"re_substitution_players"`
	CanReSubstitute       bool        `json:"can_re_substitute"`
}

// GetAvailablePlayers splits the full roster of a team into players never
// yet tracked versus tracked-but-off players, the latter gated by
// CanAllowReSubstitution.
func GetAvailablePlayers(players []Player, roster []Candidate) AvailablePlayers {
	tracked := make(map[int]*Player, len(players))
	for i := range players {
		tracked[players[i].ID] = &players[i]
	}

	result := AvailablePlayers{CanReSubstitute: CanAllowReSubstitution(players)}
	for _, c := range roster {
		if _, ok := tracked[c.ID]; !ok {
			result.NewPlayers = append(result.NewPlayers, c)
		}
	}
	if result.CanReSubstitute {
		for i := range players {
			p := players[i]
			if !p.Playing && p.TotalSeconds > 0 {
				result.ReSubstitutionPlayers = append(result.ReSubstitutionPlayers, p)
			}
		}
	}
	return result
}
