package tracker

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/noompupp/paknam-match-tracker/internal/clock"
	"github.com/noompupp/paknam-match-tracker/internal/metrics"
)

// EventKind classifies tracker events published to the sink.
type EventKind string

const (
	EventPlayerAdded           EventKind = "PLAYER_ADDED"
	EventPlayerRemoved         EventKind = "PLAYER_REMOVED"
	EventPlayerOn              EventKind = "PLAYER_ON"
	EventPlayerOff             EventKind = "PLAYER_OFF"
	EventSubstitutionPending   EventKind = "SUBSTITUTION_PENDING"
	EventSubstitutionCompleted EventKind = "SUBSTITUTION_COMPLETED"
	EventSubstitutionCancelled EventKind = "SUBSTITUTION_CANCELLED"
	EventSubstitutionSkipped   EventKind = "SUBSTITUTION_SKIPPED"
)

// Event is a human-readable description of a tracker action, consumed by the
// notification and audit-log collaborators. Advisory only: sink failures
// never affect tracker state.
type Event struct {
	Kind        EventKind           `json:"kind"`
	Message     string              `json:"message"`
	MatchSecond int                 `json:"match_second"`
	Player      *Player             `json:"player,omitempty"`
	Result      *SubstitutionResult `json:"result,omitempty"`
}

// EventSink receives tracker events. Implementations must not block; errors
// are the sink's problem.
type EventSink interface {
	Publish(ev Event)
}

// Sinks fans one event out to several sinks.
type Sinks []EventSink

func (s Sinks) Publish(ev Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Publish(ev)
		}
	}
}

// Options configure engine behavior that the rules leave open.
type Options struct {
	// HalfLengthSeconds is the length of one half. 1500 (25 min) in this
	// ruleset.
	HalfLengthSeconds int
	// GuardLastActive blocks RemovePlayer on the sole on-field player.
	GuardLastActive bool
}

// DefaultOptions matches the 7-a-side ruleset.
func DefaultOptions() Options {
	return Options{HalfLengthSeconds: 1500, GuardLastActive: true}
}

// Tracker is the player time-tracking engine and substitution flow manager.
// All mutations are synchronous and atomic from the caller's perspective; a
// substitution either fully applies or leaves every record untouched.
type Tracker struct {
	mu      sync.Mutex
	clock   clock.Clock
	sink    EventSink
	metrics metrics.Metrics
	opts    Options

	players []Player
	pending *PendingSubstitution
}

// New creates a Tracker. The match clock is an external collaborator; the
// engine only reads it, it never ticks.
func New(clk clock.Clock, sink EventSink, m metrics.Metrics, opts Options) *Tracker {
	if opts.HalfLengthSeconds <= 0 {
		opts.HalfLengthSeconds = DefaultOptions().HalfLengthSeconds
	}
	return &Tracker{clock: clk, sink: sink, metrics: m, opts: opts}
}

func (t *Tracker) publish(ev Event) {
	if t.sink == nil {
		return
	}
	t.sink.Publish(ev)
}

func (t *Tracker) reject(reason string) error {
	t.metrics.IncValidationRejections()
	return &ValidationError{Reason: reason}
}

func (t *Tracker) find(id int) *Player {
	for i := range t.players {
		if t.players[i].ID == id {
			return &t.players[i]
		}
	}
	return nil
}

// accrue closes the open session of p at matchSecond, splitting time across
// the half boundary.
func (t *Tracker) accrue(p *Player, matchSecond int) {
	first, second := splitSession(p.StartSecond, matchSecond, t.opts.HalfLengthSeconds)
	p.FirstHalfSeconds += first
	p.SecondHalfSeconds += second
	p.TotalSeconds += first + second
}

// AddPlayer adds a roster candidate to the tracker and puts them on the
// field. A "field is full" rejection means the substitution machinery must
// take over; it is not an invalid request.
func (t *Tracker) AddPlayer(c Candidate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		return t.reject("a substitution is in progress")
	}
	if check := CanSubPlayerIn(c, t.players); !check.CanAdd {
		return t.reject(check.Reason)
	}

	now := t.clock.ElapsedSeconds()
	p := Player{
		ID:          c.ID,
		Name:        c.Name,
		TeamID:      c.TeamID,
		TeamName:    c.TeamName,
		Role:        ParseRole(c.Role),
		Playing:     true,
		StartSecond: now,
	}
	t.players = append(t.players, p)
	t.metrics.IncTogglesProcessed()
	log.Info("player added to tracker", "id", p.ID, "name", p.Name, "team", p.TeamName)
	t.publish(Event{
		Kind:        EventPlayerAdded,
		Message:     fmt.Sprintf("%s (%s) entered the field", p.Name, p.TeamName),
		MatchSecond: now,
		Player:      &p,
	})
	return nil
}

// RemovePlayer deletes a tracked player. Blocked while they are part of a
// pending substitution and, when the guard is on, for the last on-field
// player.
func (t *Tracker) RemovePlayer(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.find(id)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	if t.pending != nil && (t.pending.OutgoingID == id || t.pending.IncomingID == id) {
		return t.reject("player is part of a pending substitution")
	}
	if check := CanRemovePlayer(id, t.players, t.opts.GuardLastActive); !check.CanRemove {
		return t.reject(check.Reason)
	}

	now := t.clock.ElapsedSeconds()
	if p.Playing {
		t.accrue(p, now)
	}
	removed := *p
	for i := range t.players {
		if t.players[i].ID == id {
			t.players = append(t.players[:i], t.players[i+1:]...)
			break
		}
	}
	log.Info("player removed from tracker", "id", removed.ID, "name", removed.Name)
	t.publish(Event{
		Kind:        EventPlayerRemoved,
		Message:     fmt.Sprintf("%s removed from the tracker", removed.Name),
		MatchSecond: now,
		Player:      &removed,
	})
	return nil
}

// TogglePlayer flips a tracked player on or off the field. Depending on the
// field state this either mutates directly, creates a pending substitution,
// or completes a streamlined one.
func (t *Tracker) TogglePlayer(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.find(id)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	if p.Playing {
		return t.toggleOff(p)
	}
	return t.toggleOn(p)
}

func (t *Tracker) toggleOff(p *Player) error {
	now := t.clock.ElapsedSeconds()

	if t.pending != nil {
		if t.pending.Kind != PendingSubIn {
			return t.reject("a substitution is already in progress")
		}
		// Streamlined completion: the marked incoming player takes this
		// player's place.
		return t.completeStreamlined(p, now)
	}

	if v := ValidateSubstitution(ActionToggle, p.ID, t.players, nil); !v.CanSubOut {
		return t.reject(v.Reason)
	}

	wasFull := ValidatePlayerCount(t.players).ActiveCount == MaxFieldPlayers
	prev := *p
	t.accrue(p, now)
	p.Playing = false
	t.metrics.IncTogglesProcessed()
	t.publish(Event{
		Kind:        EventPlayerOff,
		Message:     fmt.Sprintf("%s off at %d'", p.Name, now/60),
		MatchSecond: now,
		Player:      p,
	})

	// Field just dropped below the ceiling: hold a pending substitution so
	// a replacement can be chosen. Skipping it is allowed, it only warns.
	if wasFull {
		t.pending = &PendingSubstitution{
			Kind:            PendingSubOut,
			TeamID:          p.TeamID,
			TeamName:        p.TeamName,
			OutgoingID:      p.ID,
			OutgoingName:    p.Name,
			prevStartSecond: prev.StartSecond,
			prevFirstHalf:   prev.FirstHalfSeconds,
			prevSecondHalf:  prev.SecondHalfSeconds,
			prevTotal:       prev.TotalSeconds,
		}
		log.Info("pending substitution created", "outgoing", p.Name, "team", p.TeamName)
		t.publish(Event{
			Kind:        EventSubstitutionPending,
			Message:     fmt.Sprintf("%s is off, choose a replacement", p.Name),
			MatchSecond: now,
			Player:      p,
		})
	}
	return nil
}

func (t *Tracker) toggleOn(p *Player) error {
	now := t.clock.ElapsedSeconds()

	if t.pending != nil {
		return t.reject("a substitution is in progress")
	}

	switch v := ValidateSubstitution(ActionToggle, p.ID, t.players, nil); {
	case v.CanSubIn:
		p.Playing = true
		p.StartSecond = now
		t.metrics.IncTogglesProcessed()
		t.publish(Event{
			Kind:        EventPlayerOn,
			Message:     fmt.Sprintf("%s on at %d'", p.Name, now/60),
			MatchSecond: now,
			Player:      p,
		})
		return nil

	case v.RequiresSubstitution:
		// Field full. A re-entering player is held as the designated incoming
		// candidate; a never-used player is a plain rejection.
		if NeedsForcedSubstitution(p, t.players) {
			t.pending = &PendingSubstitution{
				Kind:         PendingSubIn,
				TeamID:       p.TeamID,
				TeamName:     p.TeamName,
				IncomingID:   p.ID,
				IncomingName: p.Name,
			}
			log.Info("streamlined substitution pending", "incoming", p.Name)
			t.publish(Event{
				Kind:        EventSubstitutionPending,
				Message:     fmt.Sprintf("%s is waiting to come on, toggle a player off to complete", p.Name),
				MatchSecond: now,
				Player:      p,
			})
			return nil
		}
		return t.reject(v.Reason)

	default:
		return t.reject(v.Reason)
	}
}

// completeStreamlined resolves a PendingSubIn flow: outgoing is the player
// being toggled off, the marked incoming player comes on.
func (t *Tracker) completeStreamlined(outgoing *Player, now int) error {
	incomingID := t.pending.IncomingID
	incoming := t.find(incomingID)
	if incoming == nil || incoming.Playing {
		t.pending = nil
		t.metrics.IncValidationRejections()
		return &StaleCandidateError{PlayerID: incomingID, Reason: "incoming player is no longer available"}
	}
	if check := CanSubPlayerOut(outgoing.ID, t.players); !check.CanRemove {
		return t.reject(check.Reason)
	}

	// Validate both sides before mutating either.
	t.accrue(outgoing, now)
	outgoing.Playing = false
	incoming.Playing = true
	incoming.StartSecond = now

	res := &SubstitutionResult{
		OutgoingID:   outgoing.ID,
		OutgoingName: outgoing.Name,
		IncomingID:   incoming.ID,
		IncomingName: incoming.Name,
		TeamID:       incoming.TeamID,
		TeamName:     incoming.TeamName,
		MatchSecond:  now,
	}
	t.pending = nil
	t.metrics.IncSubstitutionsCompleted()
	log.Info("substitution completed", "out", res.OutgoingName, "in", res.IncomingName)
	t.publish(Event{
		Kind:        EventSubstitutionCompleted,
		Message:     fmt.Sprintf("%s ➝ %s", res.OutgoingName, res.IncomingName),
		MatchSecond: now,
		Result:      res,
	})
	return nil
}

// CompleteSubstitution resolves a pending sub-out-initiated flow with the
// chosen replacement, which may be a tracked-but-off player or a wholly new
// roster candidate. On a stale outgoing candidate the pending state is
// cleared and no record is mutated.
func (t *Tracker) CompleteSubstitution(c Candidate) (*SubstitutionResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return nil, t.reject("no pending substitution")
	}
	if t.pending.Kind == PendingSubIn {
		return nil, t.reject("streamlined substitution completes when an on-field player is toggled off")
	}

	now := t.clock.ElapsedSeconds()
	pending := t.pending

	outgoing := t.find(pending.OutgoingID)
	if outgoing == nil || outgoing.Playing {
		t.pending = nil
		t.metrics.IncValidationRejections()
		return nil, &StaleCandidateError{PlayerID: pending.OutgoingID, Reason: "outgoing player is no longer in the expected state"}
	}

	if c.ID == pending.OutgoingID {
		return nil, t.reject(c.Name + " is the outgoing player, cancel the substitution instead")
	}
	if pending.TeamID != c.TeamID {
		return nil, t.reject("replacement must belong to " + pending.TeamName)
	}
	if ValidatePlayerCount(t.players).ActiveCount >= MaxFieldPlayers {
		t.pending = nil
		t.metrics.IncValidationRejections()
		return nil, &StaleCandidateError{PlayerID: pending.OutgoingID, Reason: "field filled up before completion"}
	}

	incoming := t.find(c.ID)
	if incoming != nil {
		if incoming.Playing {
			return nil, t.reject(c.Name + " is already on the field")
		}
		incoming.Playing = true
		incoming.StartSecond = now
	} else {
		t.players = append(t.players, Player{
			ID:          c.ID,
			Name:        c.Name,
			TeamID:      c.TeamID,
			TeamName:    c.TeamName,
			Role:        ParseRole(c.Role),
			Playing:     true,
			StartSecond: now,
		})
		incoming = t.find(c.ID)
	}

	res := &SubstitutionResult{
		OutgoingID:   pending.OutgoingID,
		OutgoingName: pending.OutgoingName,
		IncomingID:   incoming.ID,
		IncomingName: incoming.Name,
		TeamID:       incoming.TeamID,
		TeamName:     incoming.TeamName,
		MatchSecond:  now,
	}
	t.pending = nil
	t.metrics.IncSubstitutionsCompleted()
	log.Info("substitution completed", "out", res.OutgoingName, "in", res.IncomingName)
	t.publish(Event{
		Kind:        EventSubstitutionCompleted,
		Message:     fmt.Sprintf("%s ➝ %s", res.OutgoingName, res.IncomingName),
		MatchSecond: now,
		Result:      res,
	})
	return res, nil
}

// CancelSubstitution reverts the pending substitution: the sub-out flow puts
// the outgoing player back on with their session restored, the streamlined
// flow just clears the marker. No-op when nothing is pending.
func (t *Tracker) CancelSubstitution() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return
	}
	pending := t.pending
	t.pending = nil

	if pending.Kind == PendingSubOut {
		if p := t.find(pending.OutgoingID); p != nil && !p.Playing {
			p.Playing = true
			p.StartSecond = pending.prevStartSecond
			p.FirstHalfSeconds = pending.prevFirstHalf
			p.SecondHalfSeconds = pending.prevSecondHalf
			p.TotalSeconds = pending.prevTotal
		}
	}
	t.metrics.IncSubstitutionsCancelled()
	log.Info("substitution cancelled", "kind", pending.Kind)
	t.publish(Event{
		Kind:        EventSubstitutionCancelled,
		Message:     "substitution cancelled",
		MatchSecond: t.clock.ElapsedSeconds(),
	})
}

// SkipSubstitution clears the pending substitution without reverting the
// triggering toggle, leaving the field below capacity. Allowed by the rules;
// a warning is surfaced, never a block.
func (t *Tracker) SkipSubstitution() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return
	}
	kind := t.pending.Kind
	t.pending = nil
	t.metrics.IncSubstitutionsCancelled()
	active := ValidatePlayerCount(t.players).ActiveCount
	log.Warn("substitution skipped", "kind", kind, "active", active)
	t.publish(Event{
		Kind:        EventSubstitutionSkipped,
		Message:     fmt.Sprintf("substitution skipped, %d players on the field", active),
		MatchSecond: t.clock.ElapsedSeconds(),
	})
}

// Restore replaces the tracker's player records, used when resuming a
// persisted session. Pending substitution state is not persisted and starts
// clear.
func (t *Tracker) Restore(players []Player) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.players = make([]Player, len(players))
	copy(t.players, players)
	t.pending = nil
}

// Snapshot returns a read-only copy of the tracker state with live accrual
// applied to open sessions.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.ElapsedSeconds()
	players := make([]Player, len(t.players))
	copy(players, t.players)
	for i := range players {
		p := &players[i]
		if p.Playing {
			first, second := splitSession(p.StartSecond, now, t.opts.HalfLengthSeconds)
			p.FirstHalfSeconds += first
			p.SecondHalfSeconds += second
			p.TotalSeconds += first + second
			// Re-anchor the open session so the copy can be evaluated or
			// restored at this match second without double counting.
			p.StartSecond = now
		}
	}

	var pending *PendingSubstitution
	if t.pending != nil {
		cp := *t.pending
		pending = &cp
	}
	return Snapshot{
		Players:     players,
		ActiveCount: ValidatePlayerCount(players).ActiveCount,
		TeamLock:    ValidateTeamLock(players),
		Pending:     pending,
		MatchSecond: now,
	}
}

// ActiveCount returns the number of on-field players.
func (t *Tracker) ActiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ValidatePlayerCount(t.players).ActiveCount
}

// TeamLockState returns the current team lock.
func (t *Tracker) TeamLockState() TeamLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ValidateTeamLock(t.players)
}

// Pending returns a copy of the pending substitution, or nil.
func (t *Tracker) Pending() *PendingSubstitution {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		return nil
	}
	cp := *t.pending
	return &cp
}

// SubOutCandidates returns the on-field players eligible to be toggled off,
// i.e. the choices that complete a streamlined substitution.
func (t *Tracker) SubOutCandidates() []Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ReEntryCandidates(t.players)
}

// Available partitions a team roster into substitution candidate pools
// against the current tracker state.
func (t *Tracker) Available(roster []Candidate) AvailablePlayers {
	t.mu.Lock()
	defer t.mu.Unlock()
	players := make([]Player, len(t.players))
	copy(players, t.players)
	return GetAvailablePlayers(players, roster)
}

// HalfLengthSeconds exposes the configured half length for policy callers.
func (t *Tracker) HalfLengthSeconds() int {
	return t.opts.HalfLengthSeconds
}
