package config

// SimulationConfig holds simulation behaviour configuration
type SimulationConfig struct {
	// Maximum key-time steps per second the watch command replays at
	WatchRate float64 `mapstructure:"watch_rate" validate:"min=0"`

	// Burst size for the watch rate limiter
	WatchBurst int `mapstructure:"watch_burst" validate:"min=0"`

	// Persist the advanced checkpoint after every simulate run
	AutoSave bool `mapstructure:"auto_save"`
}
