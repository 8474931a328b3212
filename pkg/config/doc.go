// Package config loads typed configuration structs from environment
// variables, optionally seeded from .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: env
// files are loaded into the process environment, then struct fields are
// populated from `env` tags. Each struct type is parsed once per process and
// served from a cache afterwards.
//
// # Usage
//
//	type GateConfig struct {
//	    MaxConcurrent int `env:"GATE_MAX_CONCURRENT" envDefault:"5"`
//	}
//
//	config.MustLoadEnv(".env")
//
//	var cfg GateConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Reset clears the cache, which tests use after mutating the environment.
package config
