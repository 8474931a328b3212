package config

import "errors"

var (
	// ErrNilPointer indicates a nil destination was passed to Load
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrParse indicates the environment could not be parsed into the struct
	ErrParse = errors.New("config.parse_failed")

	// ErrEnvFile indicates an env file could not be read
	ErrEnvFile = errors.New("config.env_file_unreadable")
)
