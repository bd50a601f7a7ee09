// Package syncer periodically batches the tracker snapshot to the match
// store and the pubsub backbone. The tracker is agnostic to sync outcome; it
// only exposes its snapshot.
package syncer

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/noompupp/paknam-match-tracker/internal/match"
	"github.com/noompupp/paknam-match-tracker/internal/metrics"
	"github.com/noompupp/paknam-match-tracker/internal/pubsub"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

// SnapshotSource yields the current tracker snapshot.
type SnapshotSource func() tracker.Snapshot

// Batch is the wire shape of one snapshot sync.
type Batch struct {
	SessionID   string           `json:"session_id" msgpack:"session_id"`
	MatchSecond int              `json:"match_second" msgpack:"match_second"`
	Players     []tracker.Player `json:"players" msgpack:"players"`
	SavedAt     int64            `json:"saved_at" msgpack:"saved_at"`
}

// Syncer pushes tracker snapshots to the store and pubsub.
type Syncer struct {
	sessionID string
	source    SnapshotSource
	store     match.MatchStore
	pubsub    pubsub.PubSubClient
	metrics   metrics.Metrics
}

// New creates a Syncer for one match session.
func New(sessionID string, source SnapshotSource, store match.MatchStore, ps pubsub.PubSubClient, m metrics.Metrics) *Syncer {
	return &Syncer{
		sessionID: sessionID,
		source:    source,
		store:     store,
		pubsub:    ps,
		metrics:   m,
	}
}

// Sync performs one snapshot save and publish. Failures are logged; the
// tracker state remains authoritative regardless of outcome.
func (s *Syncer) Sync() error {
	start := time.Now()
	snap := s.source()

	var firstErr error
	if err := s.store.SavePlayerTimes(s.sessionID, snap.Players); err != nil {
		log.Error("failed to persist player times", "error", err, "session", s.sessionID)
		firstErr = err
	}

	if s.pubsub != nil {
		batch := Batch{
			SessionID:   s.sessionID,
			MatchSecond: snap.MatchSecond,
			Players:     snap.Players,
			SavedAt:     time.Now().Unix(),
		}
		if err := s.pubsub.SendMessage(pubsub.EventPlayerTimes, batch); err != nil {
			log.Error("failed to publish player times", "error", err, "session", s.sessionID)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	s.metrics.IncSnapshotSyncs()
	s.metrics.ObserveSyncDuration(time.Since(start).Seconds())
	return firstErr
}

// Run syncs on the given interval until the context is cancelled, with one
// final sync on the way out.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info("snapshot syncer started", "interval", interval, "session", s.sessionID)
	for {
		select {
		case <-ctx.Done():
			if err := s.Sync(); err != nil {
				log.Error("final snapshot sync failed", "error", err)
			}
			log.Info("snapshot syncer stopped")
			return
		case <-ticker.C:
			if err := s.Sync(); err != nil {
				log.Debug("snapshot sync failed, will retry next tick", "error", err)
			}
		}
	}
}
