package config

import (
	"github.com/caarlos0/env/v11"

	"bulkmailer/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// The nested structs are tagged with envPrefix so their fields are parsed
// with the given prefix. See the individual types in the configs package
// for default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Amqp configures the broker carrying dispatch jobs.
	Amqp configs.Amqp `envPrefix:"AMQP_"`

	// IYS configures the consent registry client.
	IYS configs.IYS `envPrefix:"IYS_"`

	// Segments configures the segment directory client.
	Segments configs.Segments `envPrefix:"SEGMENTS_"`

	// Dispatch tunes the dispatch pipeline and the scheduler poll.
	Dispatch configs.Dispatch `envPrefix:"DISPATCH_"`

	// Track holds the public base URLs embedded into outgoing mail for
	// click and open tracking.
	Track configs.Track `envPrefix:"TRACK_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
