package tracker

import "strings"

// MaxFieldPlayers is the 7-a-side on-field ceiling.
const MaxFieldPlayers = 7

// ReSubstitutionSquadSize is the number of tracked players at which
// previously-used players become eligible re-substitution candidates.
const ReSubstitutionSquadSize = 8

// Role classifies a player for time-limit policy purposes. It is resolved
// once when a player enters the tracker, never re-derived at check time.
type Role string

const (
	RoleSClass  Role = "S-CLASS"
	RoleStarter Role = "STARTER"
	RoleRegular Role = "REGULAR"
)

// ParseRole normalises the loosely-typed role strings found in roster data.
// Anything unrecognised falls back to RoleRegular.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "-")) {
	case "S-CLASS", "SCLASS", "S":
		return RoleSClass
	case "STARTER":
		return RoleStarter
	default:
		return RoleRegular
	}
}

// Player is a tracked player's live time record. Time accrues while Playing;
// the split between halves is kept so the per-half policy can be evaluated
// without re-deriving it from the event history.
type Player struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	TeamID            string `json:"team_id"`
	TeamName          string `json:"team_name"`
	Role              Role   `json:"role"`
	TotalSeconds      int    `json:"total_seconds"`
	FirstHalfSeconds  int    `json:"first_half_seconds"`
	SecondHalfSeconds int    `json:"second_half_seconds"`
	Playing           bool   `json:"playing"`
	// StartSecond is the match second the current on-field session began.
	// Only meaningful while Playing.
	StartSecond int `json:"start_second"`
}

// HalfSeconds returns the seconds accrued in the half that matchSecond falls
// in, including the live portion of an open session.
func (p *Player) HalfSeconds(matchSecond, halfLength int) int {
	first, second := p.FirstHalfSeconds, p.SecondHalfSeconds
	if p.Playing {
		df, ds := splitSession(p.StartSecond, matchSecond, halfLength)
		first += df
		second += ds
	}
	if matchSecond >= halfLength {
		return second
	}
	return first
}

// LiveTotalSeconds returns TotalSeconds plus the live portion of an open
// session, without mutating the record.
func (p *Player) LiveTotalSeconds(matchSecond int) int {
	if !p.Playing || matchSecond <= p.StartSecond {
		return p.TotalSeconds
	}
	return p.TotalSeconds + matchSecond - p.StartSecond
}

// splitSession divides the interval [start, end) of match time into its
// first-half and second-half portions.
func splitSession(start, end, halfLength int) (first, second int) {
	if end <= start {
		return 0, 0
	}
	if start < halfLength {
		stop := end
		if stop > halfLength {
			stop = halfLength
		}
		first = stop - start
	}
	if end > halfLength {
		from := start
		if from < halfLength {
			from = halfLength
		}
		second = end - from
	}
	return first, second
}

// Candidate is a roster player offered for addition or substitution. The
// role string is resolved to a Role the moment the candidate enters the
// tracker.
type Candidate struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Role     string `json:"role"`
}

// PendingKind distinguishes the two ways a pending substitution is created.
type PendingKind string

const (
	// PendingSubOut: the outgoing player was already toggled off and a
	// replacement is being chosen (the modal flow).
	PendingSubOut PendingKind = "SUB_OUT_INITIATED"
	// PendingSubIn: an incoming candidate is marked and the flow completes
	// when an active player is independently toggled off (the streamlined
	// flow).
	PendingSubIn PendingKind = "SUB_IN"
)

// PendingSubstitution holds the state of an unresolved substitution.
type PendingSubstitution struct {
	Kind     PendingKind `json:"kind"`
	TeamID   string      `json:"team_id"`
	TeamName string      `json:"team_name"`

	// Set for PendingSubOut.
	OutgoingID   int    `json:"outgoing_id,omitempty"`
	OutgoingName string `json:"outgoing_name,omitempty"`

	// Set for PendingSubIn.
	IncomingID   int    `json:"incoming_id,omitempty"`
	IncomingName string `json:"incoming_name,omitempty"`

	// Revert information for cancel on the sub-out flow: the outgoing
	// player's session state before the triggering toggle.
	prevStartSecond int
	prevFirstHalf   int
	prevSecondHalf  int
	prevTotal       int
}

// SubstitutionResult describes a resolved substitution.
type SubstitutionResult struct {
	OutgoingID   int    `json:"outgoing_id"`
	OutgoingName string `json:"outgoing_name"`
	IncomingID   int    `json:"incoming_id"`
	IncomingName string `json:"incoming_name"`
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	MatchSecond  int    `json:"match_second"`
}

// Snapshot is the read-only view the HTTP layer and the sync collaborator
// serialize. Player records have live accrual applied.
type Snapshot struct {
	Players     []Player             `json:"players"`
	ActiveCount int                  `json:"active_count"`
	TeamLock    TeamLock             `json:"team_lock"`
	Pending     *PendingSubstitution `json:"pending,omitempty"`
	MatchSecond int                  `json:"match_second"`
}
