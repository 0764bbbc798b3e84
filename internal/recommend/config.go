// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "fmt"

// Config contains configuration for the recommendation engine.
type Config struct {
	// DefaultK is the number of recommendations returned when a caller does
	// not ask for a specific count.
	DefaultK int `json:"default_k"`

	// MaxK is the largest k accepted from external callers. The engine itself
	// does not enforce it; the API and CLI reject larger values.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultK: 5,
		MaxK:     100,
	}
}

// Validate checks configuration bounds.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k must be at least default_k (%d), got %d", c.DefaultK, c.MaxK)
	}
	return nil
}
