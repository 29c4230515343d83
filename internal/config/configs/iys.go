package configs

import "time"

// IYS configures the consent registry client. The registry asserts whether
// an address has opted in to commercial email under local regulation.
type IYS struct {
	// BaseURL is the registry API root, without a trailing slash.
	BaseURL string `env:"BASE_URL" envDefault:"https://api.iys.org.tr"`
	// APIKey is sent as the IYS-API-KEY header on every request.
	APIKey  string        `env:"API_KEY"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}
