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

func NewServer(
	trk *tracker.Tracker,
	clk *clock.Match,
	rosterStore roster.RosterStore,
	matchStore match.MatchStore,
	ps pubsub.PubSubClient,
	notif notifier.Notifier,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	snapSyncer *syncer.Syncer,
	policyCfg policy.Config,
	cfg config.Config,
) *Server {
	server := &Server{
		Tracker:        trk,
		Clock:          clk,
		Roster:         rosterStore,
		Match:          matchStore,
		Pubsub:         ps,
		Notifier:       notif,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Syncer:         snapSyncer,
		Policy:         policyCfg,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/add", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/remove", Chain(s.RemovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/toggle", Chain(s.TogglePlayerHandler(), paramsMiddleware))

	s.Router.Handle("/substitution", Chain(s.PendingSubstitutionHandler(), paramsMiddleware))
	s.Router.Handle("/substitution/complete", Chain(s.CompleteSubstitutionHandler(), paramsMiddleware))
	s.Router.Handle("/substitution/cancel", Chain(s.CancelSubstitutionHandler(), paramsMiddleware))
	s.Router.Handle("/substitution/skip", Chain(s.SkipSubstitutionHandler(), paramsMiddleware))
	s.Router.Handle("/substitution/available", Chain(s.AvailablePlayersHandler(), paramsMiddleware))

	s.Router.Handle("/alerts", Chain(s.AlertsHandler(), paramsMiddleware))

	s.Router.Handle("/clock", Chain(s.ClockHandler(), paramsMiddleware))
	s.Router.Handle("/clock/start", Chain(s.ClockStartHandler(), paramsMiddleware))
	s.Router.Handle("/clock/pause", Chain(s.ClockPauseHandler(), paramsMiddleware))
	s.Router.Handle("/clock/set", Chain(s.ClockSetHandler(), paramsMiddleware))

	s.Router.Handle("/score", Chain(s.ScoreHandler(), paramsMiddleware))
	s.Router.Handle("/events", Chain(s.EventsHandler(), paramsMiddleware))
	s.Router.Handle("/events/goal", Chain(s.GoalHandler(), paramsMiddleware))
	s.Router.Handle("/events/card", Chain(s.CardHandler(), paramsMiddleware))
	s.Router.Handle("/events/marker", Chain(s.MarkerHandler(), paramsMiddleware))

	s.Router.Handle("/roster/teams", Chain(s.TeamsHandler(), paramsMiddleware))
	s.Router.Handle("/roster/players", Chain(s.RosterPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/roster/seed", Chain(s.SeedRosterHandler(), paramsMiddleware))

	s.Router.Handle("/sync", Chain(s.SyncHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
