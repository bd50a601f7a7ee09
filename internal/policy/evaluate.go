package policy

import (
	"fmt"
	"sort"

	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

// Evaluate computes the alert set for a tracker snapshot at the given match
// second. Pure and idempotent; callers re-evaluate on every tick rather than
// edge-triggering.
func Evaluate(players []tracker.Player, matchSecond int, cfg Config) []Alert {
	var alerts []Alert

	for i := range players {
		p := &players[i]
		switch p.Role {
		case tracker.RoleSClass:
			if !p.Playing {
				continue
			}
			half := p.HalfSeconds(matchSecond, cfg.HalfLength)
			switch {
			case half >= cfg.SClassHalfLimit:
				alerts = append(alerts, Alert{
					Kind:       AlertHalfLimitExceeded,
					Severity:   SeverityCritical,
					PlayerID:   p.ID,
					PlayerName: p.Name,
					Role:       p.Role,
					Seconds:    half,
					Message:    fmt.Sprintf("%s has played %d min this half and must be substituted immediately", p.Name, half/60),
				})
			case half >= cfg.SClassHalfWarning:
				alerts = append(alerts, Alert{
					Kind:       AlertHalfLimitWarning,
					Severity:   SeverityWarning,
					PlayerID:   p.ID,
					PlayerName: p.Name,
					Role:       p.Role,
					Seconds:    half,
					Message:    fmt.Sprintf("%s is approaching the half limit (%d of %d min)", p.Name, half/60, cfg.SClassHalfLimit/60),
				})
			}

		case tracker.RoleStarter:
			remaining := cfg.MatchLength - matchSecond
			if remaining >= cfg.StarterFinalWindow {
				continue
			}
			total := p.LiveTotalSeconds(matchSecond)
			if total >= cfg.StarterMinimum {
				continue
			}
			needed := cfg.StarterMinimum - total
			alerts = append(alerts, Alert{
				Kind:          AlertMinimumInsufficient,
				Severity:      SeverityWarning,
				PlayerID:      p.ID,
				PlayerName:    p.Name,
				Role:          p.Role,
				Seconds:       total,
				NeededSeconds: needed,
				Message:       fmt.Sprintf("%s needs %d more seconds to reach the %d min minimum", p.Name, needed, cfg.StarterMinimum/60),
			})
		}
	}

	if count := tracker.ValidatePlayerCount(players); !count.IsValid {
		alerts = append(alerts, Alert{
			Kind:     AlertFieldCeiling,
			Severity: SeverityCritical,
			Seconds:  count.ActiveCount,
			Message:  fmt.Sprintf("%d players on the field, limit is %d", count.ActiveCount, tracker.MaxFieldPlayers),
		})
	}

	// Deterministic order so identical snapshots compare equal.
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].PlayerID != alerts[j].PlayerID {
			return alerts[i].PlayerID < alerts[j].PlayerID
		}
		return alerts[i].Kind < alerts[j].Kind
	})
	return alerts
}
