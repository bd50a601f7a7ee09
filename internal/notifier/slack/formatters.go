package slack

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/noompupp/paknam-match-tracker/internal/match"
	"github.com/noompupp/paknam-match-tracker/internal/policy"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

func minuteStamp(matchSecond int) string {
	return fmt.Sprintf("%d'", matchSecond/60)
}

// FormatTrackerEvent creates the Slack message for a tracker action using Block Kit.
func (s *Notifier) FormatTrackerEvent(ev tracker.Event) slack.Message {
	blocks := make([]slack.Block, 0)

	var header string
	switch ev.Kind {
	case tracker.EventSubstitutionCompleted:
		header = "🔄 Substitution"
	case tracker.EventSubstitutionPending:
		header = "⏳ Substitution pending"
	case tracker.EventSubstitutionCancelled:
		header = "↩️ Substitution cancelled"
	case tracker.EventSubstitutionSkipped:
		header = "⚠️ Substitution skipped"
	case tracker.EventPlayerAdded, tracker.EventPlayerOn:
		header = "🟢 Player on"
	case tracker.EventPlayerOff:
		header = "🔴 Player off"
	default:
		header = "📋 Tracker update"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))

	body := fmt.Sprintf("%s %s", minuteStamp(ev.MatchSecond), ev.Message)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// FormatPolicyAlert creates the Slack message for a role-policy alert.
func (s *Notifier) FormatPolicyAlert(alert policy.Alert) slack.Message {
	blocks := make([]slack.Block, 0)

	header := "⏱️ Playing time warning"
	if alert.Severity == policy.SeverityCritical {
		header = "🚨 Playing time alert"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", alert.Message, true, false), nil, nil))

	if alert.Role != "" {
		context := slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("Role: %s", alert.Role), true, false))
		blocks = append(blocks, context)
	}
	return slack.NewBlockMessage(blocks...)
}

// FormatMatchEvent creates the Slack message for a goal, card or marker.
func (s *Notifier) FormatMatchEvent(ev match.Event) slack.Message {
	blocks := make([]slack.Block, 0)

	var header string
	switch ev.Kind {
	case match.EventGoal:
		header = "⚽ Goal!"
	case match.EventCard:
		if ev.CardType == match.CardRed {
			header = "🟥 Red card"
		} else {
			header = "🟨 Yellow card"
		}
	default:
		header = "📣 Match update"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))

	body := fmt.Sprintf("%s %s", minuteStamp(ev.MatchSecond), ev.Description)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// FormatScoreUpdate creates the Slack message for the current scoreboard.
func (s *Notifier) FormatScoreUpdate(score match.Score) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "📊 Score update", true, false)))
	body := fmt.Sprintf("%s %d - %d %s", score.HomeTeamID, score.Home, score.Away, score.AwayTeamID)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, true, false), nil, nil))
	return slack.NewBlockMessage(blocks...)
}
