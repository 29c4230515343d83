package configs

import "time"

// Segments configures the segment directory client used to resolve named
// recipient segments.
type Segments struct {
	// BaseURL is the directory API root, without a trailing slash.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8090"`
	// APIKey, when set, is sent as a bearer token.
	APIKey  string        `env:"API_KEY"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
