package roster

import (
	"database/sql"
	"fmt"
)

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertTeam(team Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO teams (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name;
	`, team.ID, team.Name)
	return err
}

func (s *store) UpsertPlayers(players []Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO roster_players (id, team_id, name, number, role)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team_id = excluded.team_id,
			name = excluded.name,
			number = excluded.number,
			role = excluded.role;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.TeamID, p.Name, p.Number, p.Role); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert roster player %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *store) Teams() ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *store) TeamPlayers(teamID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT p.id, p.team_id, t.name, p.name, p.number, p.role
		FROM roster_players p
		JOIN teams t ON t.id = p.team_id
		WHERE p.team_id = ?
		ORDER BY p.number
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.TeamID, &p.TeamName, &p.Name, &p.Number, &p.Role); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) Player(id int) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Player
	err := s.db.QueryRow(`
		SELECT p.id, p.team_id, t.name, p.name, p.number, p.role
		FROM roster_players p
		JOIN teams t ON t.id = p.team_id
		WHERE p.id = ?
	`, id).Scan(&p.ID, &p.TeamID, &p.TeamName, &p.Name, &p.Number, &p.Role)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("roster player %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM roster_players`); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM teams`)
	return err
}
