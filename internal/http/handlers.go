package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/noompupp/paknam-match-tracker/internal/match"
	"github.com/noompupp/paknam-match-tracker/internal/policy"
	"github.com/noompupp/paknam-match-tracker/internal/pubsub"
	"github.com/noompupp/paknam-match-tracker/internal/roster"
	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeTrackerError maps core errors onto HTTP statuses. Rule rejections
// carry display-ready reasons; everything else is a contract violation.
func writeTrackerError(w http.ResponseWriter, err error) {
	switch {
	case tracker.IsValidationError(err):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case tracker.IsStaleCandidate(err):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error(), "retry": "true"})
	case errors.Is(err, tracker.ErrUnknownPlayer):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// publishMatchEvent forwards a persisted event to the match-events topic.
// Best effort; the local record is already committed.
func (s *Server) publishMatchEvent(ev *match.Event) {
	if s.Pubsub == nil {
		return
	}
	if err := s.Pubsub.SendMessage(pubsub.EventMatchEvents, ev); err != nil {
		log.Error("Failed to publish match event", "error", err, "id", ev.ID)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c tracker.Candidate
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Tracker.AddPlayer(c); err != nil {
			writeTrackerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "Invalid 'id' parameter", http.StatusBadRequest)
			return
		}
		if err := s.Tracker.RemovePlayer(id); err != nil {
			writeTrackerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) TogglePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "Invalid 'id' parameter", http.StatusBadRequest)
			return
		}
		if err := s.Tracker.TogglePlayer(id); err != nil {
			writeTrackerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) PendingSubstitutionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending := s.Tracker.Pending()
		if pending == nil {
			writeJSON(w, http.StatusOK, map[string]any{"pending": nil})
			return
		}
		resp := map[string]any{"pending": pending}
		if pending.Kind == tracker.PendingSubIn {
			// The streamlined flow completes by toggling one of these off.
			resp["out_candidates"] = s.Tracker.SubOutCandidates()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) CompleteSubstitutionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c tracker.Candidate
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// The match recorder sink persists the completion.
		res, err := s.Tracker.CompleteSubstitution(c)
		if err != nil {
			writeTrackerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) CancelSubstitutionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Tracker.CancelSubstitution()
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) SkipSubstitutionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Tracker.SkipSubstitution()
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) AvailablePlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("teamID")
		if teamID == "" {
			http.Error(w, "Missing 'teamID' parameter", http.StatusBadRequest)
			return
		}
		squad, err := s.Roster.TeamPlayers(teamID)
		if err != nil {
			log.Error("Failed to load team roster", "error", err, "teamID", teamID)
			http.Error(w, "Failed to load roster", http.StatusInternalServerError)
			return
		}
		candidates := make([]tracker.Candidate, 0, len(squad))
		for _, p := range squad {
			candidates = append(candidates, tracker.Candidate{
				ID:       p.ID,
				Name:     p.Name,
				TeamID:   p.TeamID,
				TeamName: p.TeamName,
				Role:     p.Role,
			})
		}
		writeJSON(w, http.StatusOK, s.Tracker.Available(candidates))
	}
}

func (s *Server) AlertsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.Tracker.Snapshot()
		alerts := policy.Evaluate(snap.Players, snap.MatchSecond, s.Policy)
		writeJSON(w, http.StatusOK, map[string]any{
			"match_second": snap.MatchSecond,
			"alerts":       alerts,
		})
	}
}

func (s *Server) ClockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"elapsed_seconds": s.Clock.ElapsedSeconds(),
			"running":         s.Clock.Running(),
		})
	}
}

func (s *Server) ClockStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Clock.Start()
		writeJSON(w, http.StatusOK, map[string]any{"running": true, "elapsed_seconds": s.Clock.ElapsedSeconds()})
	}
}

func (s *Server) ClockPauseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Clock.Pause()
		writeJSON(w, http.StatusOK, map[string]any{"running": false, "elapsed_seconds": s.Clock.ElapsedSeconds()})
	}
}

func (s *Server) ClockSetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seconds, err := strconv.Atoi(r.URL.Query().Get("seconds"))
		if err != nil || seconds < 0 {
			http.Error(w, "Invalid 'seconds' parameter", http.StatusBadRequest)
			return
		}
		s.Clock.SetElapsed(seconds)
		writeJSON(w, http.StatusOK, map[string]any{"elapsed_seconds": s.Clock.ElapsedSeconds()})
	}
}

func (s *Server) ScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		score, err := s.Match.Score()
		if err != nil {
			log.Error("Failed to load score", "error", err)
			http.Error(w, "Failed to load score", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, score)
	}
}

func (s *Server) EventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := s.Match.Events()
		if err != nil {
			log.Error("Failed to load match events", "error", err)
			http.Error(w, "Failed to load events", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func (s *Server) GoalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var goal match.Goal
		if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if goal.MatchSecond == 0 {
			goal.MatchSecond = s.Clock.ElapsedSeconds()
		}
		ev, err := s.Match.AddGoal(goal)
		if err != nil {
			if errors.Is(err, match.ErrTeamsNotSet) || errors.Is(err, match.ErrUnknownTeam) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("Failed to record goal", "error", err)
			http.Error(w, "Failed to record goal", http.StatusInternalServerError)
			return
		}
		s.publishMatchEvent(ev)
		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendMatchEvent(*ev, isDryRun); err != nil {
			log.Error("Failed to send goal notification", "error", err)
		}
		if score, err := s.Match.Score(); err == nil {
			if err := s.Notifier.SendScoreUpdate(score, isDryRun); err != nil {
				log.Error("Failed to send score update", "error", err)
			}
		}
		writeJSON(w, http.StatusOK, ev)
	}
}

func (s *Server) CardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var card match.Card
		if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if card.Type != match.CardYellow && card.Type != match.CardRed {
			http.Error(w, "Invalid card type", http.StatusBadRequest)
			return
		}
		if card.MatchSecond == 0 {
			card.MatchSecond = s.Clock.ElapsedSeconds()
		}
		ev, err := s.Match.AddCard(card)
		if err != nil {
			log.Error("Failed to record card", "error", err)
			http.Error(w, "Failed to record card", http.StatusInternalServerError)
			return
		}
		s.publishMatchEvent(ev)
		if err := s.Notifier.SendMatchEvent(*ev, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send card notification", "error", err)
		}
		writeJSON(w, http.StatusOK, ev)
	}
}

func (s *Server) MarkerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Description == "" {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		ev, err := s.Match.AddMarker(body.Description, s.Clock.ElapsedSeconds())
		if err != nil {
			log.Error("Failed to record marker", "error", err)
			http.Error(w, "Failed to record marker", http.StatusInternalServerError)
			return
		}
		s.publishMatchEvent(ev)
		writeJSON(w, http.StatusOK, ev)
	}
}

func (s *Server) TeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Roster.Teams()
		if err != nil {
			log.Error("Failed to load teams", "error", err)
			http.Error(w, "Failed to load teams", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) RosterPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("teamID")
		if teamID == "" {
			http.Error(w, "Missing 'teamID' parameter", http.StatusBadRequest)
			return
		}
		players, err := s.Roster.TeamPlayers(teamID)
		if err != nil {
			log.Error("Failed to load roster", "error", err, "teamID", teamID)
			http.Error(w, "Failed to load roster", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) SeedRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Teams   []roster.Team   `json:"teams"`
			Players []roster.Player `json:"players"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		for _, t := range body.Teams {
			if err := s.Roster.UpsertTeam(t); err != nil {
				log.Error("Failed to upsert team", "error", err, "teamID", t.ID)
				http.Error(w, "Failed to seed roster", http.StatusInternalServerError)
				return
			}
		}
		if err := s.Roster.UpsertPlayers(body.Players); err != nil {
			log.Error("Failed to upsert roster players", "error", err)
			http.Error(w, "Failed to seed roster", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Seeded %d teams and %d players", len(body.Teams), len(body.Players))
	}
}

func (s *Server) SyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Syncer.Sync(); err != nil {
			http.Error(w, "Sync failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Snapshot synced.")
	}
}
