package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type testEnv struct {
	server   *Server
	tracker  *tracker.Tracker
	clock    *clock.Match
	wallTime *time.Time
	roster   *roster.Mock
	match    *match.Mock
	pubsub   *pubsub.MockPubSubClient
	notifier *notifier.Mock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	wall := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMatchAt(func() time.Time { return wall })

	m := metrics.NewMock()
	notif := notifier.NewMock()
	rosterStore := roster.NewMock()
	matchStore := match.NewMock()
	ps := pubsub.NewMock("test-project")
	sinks := tracker.Sinks{notifier.NewSink(notif), match.NewRecorder(matchStore, ps)}
	trk := tracker.New(clk, sinks, m, tracker.DefaultOptions())
	snapSyncer := syncer.New("test-session", trk.Snapshot, matchStore, nil, m)

	server := NewServer(trk, clk, rosterStore, matchStore, ps, notif, m, http.NotFoundHandler(), snapSyncer, policy.DefaultConfig(), config.Config{})
	return &testEnv{
		server:   server,
		tracker:  trk,
		clock:    clk,
		wallTime: &wall,
		roster:   rosterStore,
		match:    matchStore,
		pubsub:   ps,
		notifier: notif,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) fillField(t *testing.T) {
	t.Helper()
	for i := 1; i <= tracker.MaxFieldPlayers; i++ {
		rec := e.do(t, http.MethodPost, "/players/add", tracker.Candidate{
			ID: i, Name: fmt.Sprintf("Player %d", i), TeamID: "a", TeamName: "Team a", Role: "Regular",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) tracker.Snapshot {
	t.Helper()
	var snap tracker.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	return snap
}

func TestHealthCheckHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK!", rec.Body.String())
}

func TestAddAndListPlayers(t *testing.T) {
	env := newTestEnv(t)
	env.fillField(t)

	rec := env.do(t, http.MethodGet, "/players", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	assert.Equal(t, 7, snap.ActiveCount)
	assert.True(t, snap.TeamLock.IsLocked)
	assert.Len(t, env.notifier.SendTrackerEventCalls, 7)
}

func TestAddPlayerRejections(t *testing.T) {
	env := newTestEnv(t)
	env.fillField(t)

	t.Run("field full is a conflict", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/players/add", tracker.Candidate{ID: 8, Name: "Extra", TeamID: "a"})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "field is full")
	})

	t.Run("bad json is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/players/add", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		env.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTogglePlayerHandler(t *testing.T) {
	env := newTestEnv(t)
	env.fillField(t)

	t.Run("missing id", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/players/toggle", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/players/toggle?id=99", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("toggle off at a full field opens a pending substitution", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/players/toggle?id=3", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		snap := decodeSnapshot(t, rec)
		assert.Equal(t, 6, snap.ActiveCount)
		require.NotNil(t, snap.Pending)
		assert.Equal(t, 3, snap.Pending.OutgoingID)
	})
}

func TestSubstitutionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.fillField(t)

	rec := env.do(t, http.MethodGet, "/substitution", nil)
	assert.JSONEq(t, `{"pending": null}`, rec.Body.String())

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/players/toggle?id=3", nil).Code)

	t.Run("pending is visible", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/substitution", nil)
		assert.Contains(t, rec.Body.String(), "SUB_OUT_INITIATED")
	})

	t.Run("wrong team replacement conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/substitution/complete", tracker.Candidate{ID: 20, Name: "Wrong", TeamID: "b"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("complete logs the substitution", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/substitution/complete", tracker.Candidate{ID: 20, Name: "Sub", TeamID: "a", TeamName: "Team a"})
		require.Equal(t, http.StatusOK, rec.Code)

		var res tracker.SubstitutionResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, 3, res.OutgoingID)
		assert.Equal(t, 20, res.IncomingID)

		require.Len(t, env.match.LogSubstitutionCalls, 1)
		assert.Equal(t, 20, env.match.LogSubstitutionCalls[0].IncomingID)
	})

	t.Run("cancel restores the field", func(t *testing.T) {
		require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/players/toggle?id=4", nil).Code)
		rec := env.do(t, http.MethodPost, "/substitution/cancel", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		snap := decodeSnapshot(t, rec)
		assert.Equal(t, 7, snap.ActiveCount)
		assert.Nil(t, snap.Pending)
	})

	t.Run("skip leaves the field short-handed", func(t *testing.T) {
		require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/players/toggle?id=4", nil).Code)
		rec := env.do(t, http.MethodPost, "/substitution/skip", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		snap := decodeSnapshot(t, rec)
		assert.Equal(t, 6, snap.ActiveCount)
		assert.Nil(t, snap.Pending)
	})
}

func TestStreamlinedSubstitutionReachesEventLog(t *testing.T) {
	env := newTestEnv(t)
	env.fillField(t)
	env.clock.SetElapsed(300)

	// Player 7 goes off through the modal flow so they have prior minutes.
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/players/toggle?id=7", nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/substitution/complete",
		tracker.Candidate{ID: 8, Name: "Sub", TeamID: "a", TeamName: "Team a"}).Code)
	require.Len(t, env.match.LogSubstitutionCalls, 1)

	// Re-entry at a full field marks player 7 as the incoming candidate.
	env.clock.SetElapsed(900)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/players/toggle?id=7", nil).Code)

	t.Run("pending lists the toggle-off choices", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/substitution", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Pending       *tracker.PendingSubstitution `json:"pending"`
			OutCandidates []tracker.Player             `json:"out_candidates"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.NotNil(t, body.Pending)
		assert.Equal(t, tracker.PendingSubIn, body.Pending.Kind)
		assert.Len(t, body.OutCandidates, 7)
	})

	t.Run("completion via toggle-off is logged and published", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/players/toggle?id=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		snap := decodeSnapshot(t, rec)
		assert.Nil(t, snap.Pending)
		assert.Equal(t, 7, snap.ActiveCount)

		require.Len(t, env.match.LogSubstitutionCalls, 2)
		assert.Equal(t, 1, env.match.LogSubstitutionCalls[1].OutgoingID)
		assert.Equal(t, 7, env.match.LogSubstitutionCalls[1].IncomingID)

		events, err := env.match.Events()
		require.NoError(t, err)
		var subs []match.Event
		for _, ev := range events {
			if ev.Kind == match.EventSubstitution {
				subs = append(subs, ev)
			}
		}
		require.Len(t, subs, 2)
		assert.Equal(t, "Player 1 off, Player 7 on", subs[1].Description)

		require.Len(t, env.pubsub.SendMessageCalls, 2)
		assert.Equal(t, string(pubsub.EventMatchEvents), env.pubsub.SendMessageCalls[1].Topic)
	})
}

func TestAvailablePlayersHandler(t *testing.T) {
	env := newTestEnv(t)
	env.fillField(t)
	require.NoError(t, env.roster.UpsertTeam(roster.Team{ID: "a", Name: "Team a"}))
	require.NoError(t, env.roster.UpsertPlayers([]roster.Player{
		{ID: 1, TeamID: "a", TeamName: "Team a", Name: "Player 1", Role: "Regular"},
		{ID: 30, TeamID: "a", TeamName: "Team a", Name: "Fresh", Role: "Starter"},
	}))

	t.Run("missing teamID", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/substitution/available", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("partitions the roster", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/substitution/available?teamID=a", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got tracker.AvailablePlayers
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.False(t, got.CanReSubstitute)
		require.Len(t, got.NewPlayers, 1)
		assert.Equal(t, 30, got.NewPlayers[0].ID)
	})
}

func TestClockEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/clock/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	*env.wallTime = env.wallTime.Add(90 * time.Second)

	rec = env.do(t, http.MethodGet, "/clock", nil)
	var status struct {
		ElapsedSeconds int  `json:"elapsed_seconds"`
		Running        bool `json:"running"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, 90, status.ElapsedSeconds)
	assert.True(t, status.Running)

	rec = env.do(t, http.MethodPost, "/clock/pause", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.clock.Running())

	rec = env.do(t, http.MethodPost, "/clock/set?seconds=1500", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1500, env.clock.ElapsedSeconds())

	rec = env.do(t, http.MethodPost, "/clock/set?seconds=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoalHandler(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.match.SetTeams("a", "b"))
	env.clock.SetElapsed(480)

	rec := env.do(t, http.MethodPost, "/events/goal", match.Goal{TeamID: "a", ScorerID: 9, ScorerName: "Anan"})
	require.Equal(t, http.StatusOK, rec.Code)

	var ev match.Event
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ev))
	assert.Equal(t, match.EventGoal, ev.Kind)
	// Match second defaults to the clock reading.
	assert.Equal(t, 480, ev.MatchSecond)

	// Goal notification plus a score update.
	assert.Len(t, env.notifier.SendMatchEventCalls, 1)
	require.Len(t, env.notifier.SendScoreUpdateCalls, 1)
	assert.Equal(t, 1, env.notifier.SendScoreUpdateCalls[0].Home)

	// The persisted event also goes out on the match-events topic.
	require.Len(t, env.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventMatchEvents), env.pubsub.SendMessageCalls[0].Topic)
}

func TestGoalHandlerRejectsBadTeams(t *testing.T) {
	env := newTestEnv(t)

	t.Run("before teams are set", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/events/goal", match.Goal{TeamID: "a", ScorerID: 9, ScorerName: "Anan"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "teams not set")
	})

	require.NoError(t, env.match.SetTeams("a", "b"))

	t.Run("team outside the match", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/events/goal", match.Goal{TeamID: "c", ScorerID: 9, ScorerName: "Anan"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "not in this match")
	})

	assert.Empty(t, env.notifier.SendMatchEventCalls)
	assert.Empty(t, env.pubsub.SendMessageCalls)
}

func TestCardHandler(t *testing.T) {
	env := newTestEnv(t)

	t.Run("rejects unknown card types", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/events/card", match.Card{PlayerID: 2, PlayerName: "Kla", Type: "BLUE"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("records a yellow", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/events/card", match.Card{TeamID: "b", PlayerID: 2, PlayerName: "Kla", Type: match.CardYellow, MatchSecond: 700})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, env.match.AddCardCalls, 1)
		assert.Equal(t, match.CardYellow, env.match.AddCardCalls[0].Type)
	})
}

func TestMarkerAndEvents(t *testing.T) {
	env := newTestEnv(t)
	env.clock.SetElapsed(1500)

	rec := env.do(t, http.MethodPost, "/events/marker", map[string]string{"description": "Half-time"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []match.Event
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, match.EventMarker, events[0].Kind)
	assert.Equal(t, 1500, events[0].MatchSecond)
}

func TestAlertsHandler(t *testing.T) {
	env := newTestEnv(t)
	c := tracker.Candidate{ID: 1, Name: "Boon", TeamID: "a", TeamName: "Team a", Role: "S-Class"}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/players/add", c).Code)
	c2 := tracker.Candidate{ID: 2, Name: "Anan", TeamID: "a", TeamName: "Team a", Role: "Regular"}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/players/add", c2).Code)
	env.clock.Start()
	*env.wallTime = env.wallTime.Add(1000 * time.Second)

	rec := env.do(t, http.MethodGet, "/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		MatchSecond int            `json:"match_second"`
		Alerts      []policy.Alert `json:"alerts"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1000, body.MatchSecond)
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, policy.AlertHalfLimitWarning, body.Alerts[0].Kind)
	assert.Equal(t, "Boon", body.Alerts[0].PlayerName)
}

func TestSeedRosterHandler(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]any{
		"teams": []roster.Team{{ID: "a", Name: "Team a"}},
		"players": []roster.Player{
			{ID: 1, TeamID: "a", Name: "Anan", Number: 9, Role: "Regular"},
		},
	}

	rec := env.do(t, http.MethodPost, "/roster/seed", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Seeded 1 teams and 1 players", rec.Body.String())
	assert.Len(t, env.roster.UpsertTeamCalls, 1)

	rec = env.do(t, http.MethodGet, "/roster/teams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/roster/players?teamID=a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var players []roster.Player
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&players))
	assert.Len(t, players, 1)
}

func TestSyncHandler(t *testing.T) {
	env := newTestEnv(t)
	env.fillField(t)

	rec := env.do(t, http.MethodPost, "/sync", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.match.SavePlayerTimesCalls, 1)
	assert.Equal(t, "test-session", env.match.SavePlayerTimesCalls[0])
}

func TestScoreHandler(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.match.SetTeams("a", "b"))
	require.NoError(t, env.match.SetScore(2, 1))

	rec := env.do(t, http.MethodGet, "/score", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var score match.Score
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&score))
	assert.Equal(t, 2, score.Home)
	assert.Equal(t, 1, score.Away)
}
