package engine

import "time"

// Config holds per-session engine configuration. It survives Reset: only
// the mutable session state (history, budget consumption, cache contents)
// is discarded.
type Config struct {
	MaxToolCalls      int           // tool invocation budget per session
	DefaultTimeout    time.Duration // execution timeout when a call carries none
	DisableLogging    bool          // silence the diagnostic log channel
	EnableResultCache bool          // serve repeated identical calls from cache
	TestMode          bool          // honor injected mock results
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		MaxToolCalls:      50,
		DefaultTimeout:    30 * time.Second,
		EnableResultCache: true,
	}
}
