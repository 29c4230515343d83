package configs

// Track holds the public base URLs embedded into outgoing mail. ClickBaseURL
// receives a tracked link id as its final path segment; OpenBaseURL receives
// a delivery-log entry id.
type Track struct {
	ClickBaseURL string `env:"CLICK_BASE_URL" envDefault:"http://localhost:8080/r"`
	OpenBaseURL  string `env:"OPEN_BASE_URL" envDefault:"http://localhost:8080/o"`
}
