package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TogglesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paknam_toggles_processed_total",
			Help: "The total number of player field toggles applied.",
		}),
		SubstitutionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paknam_substitutions_completed_total",
			Help: "The total number of substitutions resolved.",
		}),
		SubstitutionsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paknam_substitutions_cancelled_total",
			Help: "The total number of pending substitutions cancelled or skipped.",
		}),
		ValidationRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paknam_validation_rejections_total",
			Help: "The total number of actions rejected by the rules.",
		}),
		PolicyAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paknam_policy_alerts_total",
			Help: "The total number of role-policy alerts pushed to the notifier.",
		}),
		SnapshotSyncs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paknam_snapshot_syncs_total",
			Help: "The total number of tracker snapshot syncs.",
		}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "paknam_snapshot_sync_duration_seconds",
			Help:    "The duration of individual snapshot syncs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paknam_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paknam_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "paknam_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TogglesProcessed,
		s.SubstitutionsCompleted,
		s.SubstitutionsCancelled,
		s.ValidationRejections,
		s.PolicyAlerts,
		s.SnapshotSyncs,
		s.SyncDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTogglesProcessed() {
	s.TogglesProcessed.Inc()
}

func (s *Service) IncSubstitutionsCompleted() {
	s.SubstitutionsCompleted.Inc()
}

func (s *Service) IncSubstitutionsCancelled() {
	s.SubstitutionsCancelled.Inc()
}

func (s *Service) IncValidationRejections() {
	s.ValidationRejections.Inc()
}

func (s *Service) IncPolicyAlerts() {
	s.PolicyAlerts.Inc()
}

func (s *Service) IncSnapshotSyncs() {
	s.SnapshotSyncs.Inc()
}

func (s *Service) ObserveSyncDuration(duration float64) {
	s.SyncDuration.Observe(duration)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
