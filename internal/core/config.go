package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The host uses this to adapt to terminal size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Viewport width in characters
	ScreenH  int   // Viewport height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for world generation and simulation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
