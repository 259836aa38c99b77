package recommend

import "time"

// DefaultEndpoint is the reference recommendation service address.
const DefaultEndpoint = "http://localhost:5000/api/recommendation"

// Config holds settings for the recommendation client.
type Config struct {
	Endpoint string

	// Timeout bounds a single request. Zero means no timeout, the call
	// then ends only when the server answers or the connection fails.
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at the reference endpoint with
// no timeout.
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
	}
}
