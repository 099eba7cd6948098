package config

import "time"

// ClientConfig is the top-level configuration container for the client
// binary. It is populated from environment variables only; the client is a
// thin tool and does not need the full flag/JSON merge machinery of the
// server.
type ClientConfig struct {
	// Adapter holds the connection settings for the account service API.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// Session holds the session cache settings.
	Session ClientSession `envPrefix:"SESSION_"`

	// Credentials optionally pre-authenticate the session at startup.
	Credentials ClientCredentials `envPrefix:"AUTH_"`
}

// ClientCredentials are optional startup credentials. When both fields are
// set the client logs in immediately after wiring; otherwise the session
// starts unauthenticated.
type ClientCredentials struct {
	// Env: AUTH_EMAIL
	Email string `env:"EMAIL"`

	// Env: AUTH_PASSWORD
	Password string `env:"PASSWORD"`
}

// ClientAdapter holds the connection settings for the server API.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the account service
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS" envDefault:"http://localhost:8080"`

	// RequestTimeout bounds every outbound API request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// ClientSession holds the current-user session cache settings.
type ClientSession struct {
	// TTL is the freshness window of the cached current-user entry.
	// A cached value older than TTL is refetched on next access.
	// Env: SESSION_TTL
	TTL time.Duration `env:"TTL" envDefault:"1m"`

	// RefreshInterval is how often the background session job refreshes
	// the cached current-user entry while logged in.
	// Env: SESSION_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5m"`
}

// GetClientConfig loads and validates the client configuration from
// environment variables.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
