package roster

import (
	"database/sql"
	"sync"
)

// store handles all database operations for team rosters.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Team is a club side with a stable identifier; the name is for display
// only and must never be used as a partition key.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Player is an eligible squad member of a team. Role is the raw roster
// string; the tracker resolves it to its closed role set at ingestion.
type Player struct {
	ID       int    `json:"id"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Role     string `json:"role"`
}
