package tracker

import (
	"errors"
	"fmt"
)

// ErrUnknownPlayer indicates a caller referenced a player id that is not in
// the tracker. This is a contract violation, not a rule rejection.
var ErrUnknownPlayer = errors.New("unknown player id")

// ValidationError is a business-rule rejection. Reason is display-ready.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidationError reports whether err is a business-rule rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StaleCandidateError indicates a substitution completion referenced a
// player that is no longer in the expected state. The pending substitution
// has been cleared; no player record was mutated.
type StaleCandidateError struct {
	PlayerID int
	Reason   string
}

func (e *StaleCandidateError) Error() string {
	return fmt.Sprintf("stale substitution candidate %d: %s", e.PlayerID, e.Reason)
}

// IsStaleCandidate reports whether err is a StaleCandidateError.
func IsStaleCandidate(err error) bool {
	var se *StaleCandidateError
	return errors.As(err, &se)
}
