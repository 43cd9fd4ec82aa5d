// Package config exposes typed access to application configuration.
package config

import (
	"io"
	"time"
)

// Config defines the configuration lookups used by the application.
//
// Implementations return the zero value for missing keys or values that cannot
// be converted.
type Config interface {
	io.Closer

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool
	// GetInt returns the value for key as an int.
	GetInt(key string) int
	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64
	// GetString returns the value for key as a string.
	GetString(key string) string
	// GetSecond returns the integer value for key as a number of seconds.
	GetSecond(key string) time.Duration
	// GetArray returns the value for key split on commas, trimmed, without empty elements.
	// Native list values are returned as-is.
	GetArray(key string) []string
}
