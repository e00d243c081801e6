package network

import (
	"fmt"
	"time"
)

// Config holds inspector server configuration
type Config struct {
	// Enabled starts the listener; a disabled service still accepts world peers
	Enabled bool

	// Address to bind
	Address string
	// Path serving the websocket upgrade
	Path string

	// Timing
	WriteTimeout time.Duration
	PingInterval time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
	ReadLimit       int64

	MaxClients int
}

// DefaultConfig returns local inspector defaults
func DefaultConfig() *Config {
	return &Config{
		Address:         "127.0.0.1:7777",
		Path:            "/ws",
		WriteTimeout:    5 * time.Second,
		PingInterval:    20 * time.Second,
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 16 * 1024,
		SendQueueSize:   256,
		ReadLimit:       4 * 1024,
		MaxClients:      16,
	}
}

// Validate reports the first unusable field
func (c *Config) Validate() error {
	switch {
	case c.Path == "" || c.Path[0] != '/':
		return fmt.Errorf("path %q must start with /: %w", c.Path, ErrInvalidConfig)
	case c.SendQueueSize <= 0:
		return fmt.Errorf("send queue size %d: %w", c.SendQueueSize, ErrInvalidConfig)
	case c.WriteTimeout <= 0:
		return fmt.Errorf("write timeout %s: %w", c.WriteTimeout, ErrInvalidConfig)
	case c.PingInterval <= 0:
		return fmt.Errorf("ping interval %s: %w", c.PingInterval, ErrInvalidConfig)
	case c.MaxClients <= 0:
		return fmt.Errorf("max clients %d: %w", c.MaxClients, ErrInvalidConfig)
	case c.Enabled && c.Address == "":
		return fmt.Errorf("empty address: %w", ErrInvalidConfig)
	}
	return nil
}
