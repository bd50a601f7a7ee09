package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/noompupp/paknam-match-tracker/internal/clock"
	"github.com/noompupp/paknam-match-tracker/internal/config"
	"github.com/noompupp/paknam-match-tracker/internal/database"
	server "github.com/noompupp/paknam-match-tracker/internal/http"
	"github.com/noompupp/paknam-match-tracker/internal/match"
	"github.com/noompupp/paknam-match-tracker/internal/metrics"
	"github.com/noompupp/paknam-match-tracker/internal/notifier"
	slacknotifier "github.com/noompupp/paknam-match-tracker/internal/notifier/slack"
	"github.com/noompupp/paknam-match-tracker/internal/policy"
	"github.com/noompupp/paknam-match-tracker/internal/pubsub"
	"github.com/noompupp/paknam-match-tracker/internal/roster"
	"github.com/noompupp/paknam-match-tracker/internal/syncer"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	rosterStore := roster.New(db)
	matchStore := match.New(db)

	notif := slacknotifier.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	matchClock := clock.NewMatch()
	pubsubClient := pubsub.New(cfg.ProjectID)

	// Completed substitutions fan out to the notifier and the match record.
	sinks := tracker.Sinks{
		notifier.NewSink(notif),
		match.NewRecorder(matchStore, pubsubClient),
	}
	trk := tracker.New(matchClock, sinks, metricsSvc, tracker.Options{
		HalfLengthSeconds: cfg.Match.HalfLengthSeconds,
		GuardLastActive:   cfg.Match.GuardLastActive,
	})

	// Restore a previous session's player times if any were persisted.
	if saved, err := matchStore.LoadPlayerTimes(cfg.SessionID); err != nil {
		log.Error("Failed to load saved player times", "error", err)
	} else if len(saved) > 0 {
		log.Info("Restoring player times from a previous session", "players", len(saved))
		trk.Restore(saved)
	}

	policyCfg := policy.DefaultConfig()
	policyCfg.HalfLength = cfg.Match.HalfLengthSeconds
	policyCfg.MatchLength = 2 * cfg.Match.HalfLengthSeconds

	snapSyncer := syncer.New(cfg.SessionID, trk.Snapshot, matchStore, pubsubClient, metricsSvc)
	watcher := policy.NewWatcher(func() []policy.Alert {
		snap := trk.Snapshot()
		return policy.Evaluate(snap.Players, snap.MatchSecond, policyCfg)
	}, notif, metricsSvc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go snapSyncer.Run(ctx, 15*time.Second)
	go watcher.Run(ctx, time.Second)

	s := server.NewServer(
		trk,
		matchClock,
		rosterStore,
		matchStore,
		pubsubClient,
		notif,
		metricsSvc,
		metricsHandler,
		snapSyncer,
		policyCfg,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
