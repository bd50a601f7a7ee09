package match

import (
	"github.com/charmbracelet/log"

	"github.com/noompupp/paknam-match-tracker/internal/pubsub"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

// Recorder writes resolved substitutions from the tracker into the match
// event log and the match-events topic, covering every completion path
// including the streamlined flow that resolves inside a toggle. Failures
// are logged; tracker state stays authoritative.
type Recorder struct {
	store  MatchStore
	pubsub pubsub.PubSubClient
}

var _ tracker.EventSink = (*Recorder)(nil)

// NewRecorder creates a Recorder. The pubsub client may be nil.
func NewRecorder(store MatchStore, ps pubsub.PubSubClient) *Recorder {
	return &Recorder{store: store, pubsub: ps}
}

func (r *Recorder) Publish(ev tracker.Event) {
	if ev.Kind != tracker.EventSubstitutionCompleted || ev.Result == nil {
		return
	}
	logged, err := r.store.LogSubstitution(*ev.Result)
	if err != nil {
		log.Error("failed to log substitution", "error", err, "out", ev.Result.OutgoingID, "in", ev.Result.IncomingID)
		return
	}
	if r.pubsub == nil {
		return
	}
	if err := r.pubsub.SendMessage(pubsub.EventMatchEvents, logged); err != nil {
		log.Error("failed to publish substitution event", "error", err, "id", logged.ID)
	}
}
