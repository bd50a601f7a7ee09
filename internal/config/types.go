package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	SessionID     string
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	Match         MatchConfig
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// MatchConfig carries the ruleset knobs. Seconds throughout.
type MatchConfig struct {
	HalfLengthSeconds int
	GuardLastActive   bool
}
