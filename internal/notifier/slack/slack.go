package slack

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/noompupp/paknam-match-tracker/internal/match"
	"github.com/noompupp/paknam-match-tracker/internal/metrics"
	"github.com/noompupp/paknam-match-tracker/internal/notifier"
	"github.com/noompupp/paknam-match-tracker/internal/policy"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending match notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err)
		return "", err
	}
	s.metrics.IncNotifSent()
	return timestamp, nil
}

func (s *Notifier) SendTrackerEvent(ev tracker.Event, dryRun bool) (string, error) {
	return s.sendMessage(s.FormatTrackerEvent(ev), dryRun)
}

func (s *Notifier) SendPolicyAlert(alert policy.Alert, dryRun bool) error {
	_, err := s.sendMessage(s.FormatPolicyAlert(alert), dryRun)
	return err
}

func (s *Notifier) SendMatchEvent(ev match.Event, dryRun bool) error {
	_, err := s.sendMessage(s.FormatMatchEvent(ev), dryRun)
	return err
}

func (s *Notifier) SendScoreUpdate(score match.Score, dryRun bool) error {
	_, err := s.sendMessage(s.FormatScoreUpdate(score), dryRun)
	return err
}
