package types

import "errors"

// Config holds backend selection and parameters for opening a Store.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	StaleDays int    `json:"stale_days,omitempty" yaml:"stale_days,omitempty"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultStaleDays is the age at which an untouched task counts as stale.
const DefaultStaleDays = 14

// Config validation errors.
var (
	ErrBackendEmpty     = errors.New("backend must not be empty")
	ErrBackendUnknown   = errors.New("unknown backend")
	ErrStaleDaysInvalid = errors.New("stale_days must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSON:   true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.StaleDays < 0 {
		return ErrStaleDaysInvalid
	}
	return nil
}
