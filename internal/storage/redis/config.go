package redis

import "time"

// Config holds Redis connection and TTL settings
type Config struct {
	// URL is the Redis connection URL (redis://...)
	URL string

	// PoolSize is the maximum number of connections
	PoolSize int

	// MinIdleConns is the minimum number of idle connections
	MinIdleConns int

	// PlayerTTL is a backstop expiry for registry entries whose disconnect
	// was never observed. Zero disables expiry.
	PlayerTTL time.Duration

	// RoomTTL is a backstop expiry for rooms. Zero disables expiry.
	// The reaper remains the primary reclamation path.
	RoomTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis storage
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		PlayerTTL:    24 * time.Hour,
		RoomTTL:      24 * time.Hour,
	}
}
