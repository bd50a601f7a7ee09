package match

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noompupp/paknam-match-tracker/internal/tracker"
)

// New creates a new MatchStore.
func New(db *sql.DB) MatchStore {
	return &store{
		db: db,
	}
}

func (s *store) SetTeams(homeTeamID, awayTeamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO match_score (id, home_team_id, away_team_id, home_score, away_score)
		VALUES (1, ?, ?, 0, 0)
		ON CONFLICT(id) DO UPDATE SET
			home_team_id = excluded.home_team_id,
			away_team_id = excluded.away_team_id;
	`, homeTeamID, awayTeamID)
	return err
}

func (s *store) Score() (Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sc Score
	err := s.db.QueryRow(`
		SELECT home_team_id, away_team_id, home_score, away_score FROM match_score WHERE id = 1
	`).Scan(&sc.HomeTeamID, &sc.AwayTeamID, &sc.Home, &sc.Away)
	if err == sql.ErrNoRows {
		return Score{}, nil
	}
	return sc, err
}

func (s *store) SetScore(home, away int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE match_score SET home_score = ?, away_score = ? WHERE id = 1`, home, away)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTeamsNotSet
	}
	return nil
}

func (s *store) insertEvent(ev *Event) error {
	_, err := s.db.Exec(`
		INSERT INTO match_events (id, kind, team_id, player_id, player_name, assist_id, assist_name, card_type, description, match_second, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ev.ID, ev.Kind, ev.TeamID, ev.PlayerID, ev.PlayerName, ev.AssistID, ev.AssistName, ev.CardType, ev.Description, ev.MatchSecond, ev.CreatedAt)
	return err
}

func (s *store) AddGoal(goal Goal) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var home, away string
	err := s.db.QueryRow(`SELECT home_team_id, away_team_id FROM match_score WHERE id = 1`).Scan(&home, &away)
	if err == sql.ErrNoRows {
		return nil, ErrTeamsNotSet
	}
	if err != nil {
		return nil, err
	}
	if goal.TeamID != home && goal.TeamID != away {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, goal.TeamID)
	}

	description := fmt.Sprintf("Goal by %s", goal.ScorerName)
	if goal.AssistName != nil && *goal.AssistName != "" {
		description += fmt.Sprintf(" (assist %s)", *goal.AssistName)
	}
	ev := &Event{
		ID:          uuid.NewString(),
		Kind:        EventGoal,
		TeamID:      goal.TeamID,
		PlayerID:    goal.ScorerID,
		PlayerName:  goal.ScorerName,
		AssistID:    goal.AssistID,
		AssistName:  goal.AssistName,
		Description: description,
		MatchSecond: goal.MatchSecond,
		CreatedAt:   time.Now().Unix(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`
		UPDATE match_score SET
			home_score = home_score + (home_team_id = ?),
			away_score = away_score + (away_team_id = ?)
		WHERE id = 1
	`, goal.TeamID, goal.TeamID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.Exec(`
		INSERT INTO match_events (id, kind, team_id, player_id, player_name, assist_id, assist_name, card_type, description, match_second, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ev.ID, ev.Kind, ev.TeamID, ev.PlayerID, ev.PlayerName, ev.AssistID, ev.AssistName, ev.CardType, ev.Description, ev.MatchSecond, ev.CreatedAt); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *store) AddCard(card Card) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := &Event{
		ID:          uuid.NewString(),
		Kind:        EventCard,
		TeamID:      card.TeamID,
		PlayerID:    card.PlayerID,
		PlayerName:  card.PlayerName,
		CardType:    card.Type,
		Description: fmt.Sprintf("%s card for %s", card.Type, card.PlayerName),
		MatchSecond: card.MatchSecond,
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.insertEvent(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *store) AddMarker(description string, matchSecond int) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := &Event{
		ID:          uuid.NewString(),
		Kind:        EventMarker,
		Description: description,
		MatchSecond: matchSecond,
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.insertEvent(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *store) LogSubstitution(res tracker.SubstitutionResult) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := &Event{
		ID:          uuid.NewString(),
		Kind:        EventSubstitution,
		TeamID:      res.TeamID,
		PlayerID:    res.IncomingID,
		PlayerName:  res.IncomingName,
		Description: fmt.Sprintf("%s off, %s on", res.OutgoingName, res.IncomingName),
		MatchSecond: res.MatchSecond,
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.insertEvent(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *store) Events() ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, kind, team_id, player_id, player_name, assist_id, assist_name, card_type, description, match_second, created_at
		FROM match_events
		ORDER BY match_second, created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var teamID, playerName, cardType sql.NullString
		var playerID sql.NullInt64
		if err := rows.Scan(&ev.ID, &ev.Kind, &teamID, &playerID, &playerName, &ev.AssistID, &ev.AssistName, &cardType, &ev.Description, &ev.MatchSecond, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.TeamID = teamID.String
		ev.PlayerID = int(playerID.Int64)
		ev.PlayerName = playerName.String
		ev.CardType = CardType(cardType.String)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// SavePlayerTimes replaces the persisted player-time snapshot for a session.
func (s *store) SavePlayerTimes(sessionID string, players []tracker.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM player_times WHERE session_id = ?`, sessionID); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO player_times (session_id, player_id, name, team_id, team_name, role, total_seconds, first_half_seconds, second_half_seconds, playing, start_second, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, p := range players {
		if _, err := stmt.Exec(sessionID, p.ID, p.Name, p.TeamID, p.TeamName, string(p.Role), p.TotalSeconds, p.FirstHalfSeconds, p.SecondHalfSeconds, p.Playing, p.StartSecond, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save player time %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *store) LoadPlayerTimes(sessionID string) ([]tracker.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, name, team_id, team_name, role, total_seconds, first_half_seconds, second_half_seconds, playing, start_second
		FROM player_times
		WHERE session_id = ?
		ORDER BY player_id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []tracker.Player
	for rows.Next() {
		var p tracker.Player
		var role string
		if err := rows.Scan(&p.ID, &p.Name, &p.TeamID, &p.TeamName, &role, &p.TotalSeconds, &p.FirstHalfSeconds, &p.SecondHalfSeconds, &p.Playing, &p.StartSecond); err != nil {
			return nil, err
		}
		p.Role = tracker.Role(role)
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"match_events", "player_times", "match_score"} {
		if _, err := s.db.Exec(`DELETE FROM ` + table); err != nil {
			return err
		}
	}
	return nil
}
