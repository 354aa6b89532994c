package core

// RuntimeConfig contains configuration passed to the shell at start-up.
// The shell uses it to size the board and to seed runs.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frame clock ticks per second (default 60)
	Seed     int64  // Run seed, 0 = derive from time
	Player   string // Name stored with results
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "local",
	}
}
