package http

import (
	"net/http"

	"github.com/noompupp/paknam-match-tracker/internal/clock"
	"github.com/noompupp/paknam-match-tracker/internal/config"
	"github.com/noompupp/paknam-match-tracker/internal/match"
	"github.com/noompupp/paknam-match-tracker/internal/metrics"
	"github.com/noompupp/paknam-match-tracker/internal/notifier"
	"github.com/noompupp/paknam-match-tracker/internal/policy"
	"github.com/noompupp/paknam-match-tracker/internal/pubsub"
	"github.com/noompupp/paknam-match-tracker/internal/roster"
	"github.com/noompupp/paknam-match-tracker/internal/syncer"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

type Server struct {
	Tracker        *tracker.Tracker
	Clock          *clock.Match
	Roster         roster.RosterStore
	Match          match.MatchStore
	Pubsub         pubsub.PubSubClient
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Syncer         *syncer.Syncer
	Policy         policy.Config
	Cfg            config.Config
	Router         *http.ServeMux
}
