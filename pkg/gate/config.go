package gate

// Config holds request gate configuration.
type Config struct {
	// MaxConcurrent caps the number of in-flight requests.
	MaxConcurrent int64 `env:"GATE_MAX_CONCURRENT" envDefault:"5"`

	// EnvironmentTag is the fixed X-ENV marker attached to API requests.
	EnvironmentTag string `env:"GATE_ENVIRONMENT_TAG" envDefault:"backend"`
}

// DefaultConfig returns the default gate configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:  5,
		EnvironmentTag: "backend",
	}
}
