package roster

// RosterStore defines the interface for team and squad data. It is the
// candidate-pool provider for the substitution flow.
type RosterStore interface {
	UpsertTeam(team Team) error
	UpsertPlayers(players []Player) error
	Teams() ([]Team, error)
	TeamPlayers(teamID string) ([]Player, error)
	Player(id int) (*Player, error)
	Clear() error
}
