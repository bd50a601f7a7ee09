package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventPlayerTimes carries the batched player-time snapshot.
	EventPlayerTimes EventType = "player-times"
	// EventMatchEvents carries goal/card/substitution records for the
	// downstream audit log.
	EventMatchEvents EventType = "match-events"
)
