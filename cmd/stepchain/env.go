package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ChamsBouzaiene/stepchain/internal/engine"
)

// configFromEnv maps environment variables onto the session configuration,
// falling back to defaults on anything unset or unparseable.
func configFromEnv() engine.Config {
	cfg := engine.DefaultConfig()

	if v := os.Getenv("STEPCHAIN_MAX_TOOL_CALLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxToolCalls = n
		} else {
			log.Printf("WARNING: invalid STEPCHAIN_MAX_TOOL_CALLS %q, using default %d", v, cfg.MaxToolCalls)
		}
	}

	if v := os.Getenv("STEPCHAIN_DEFAULT_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultTimeout = time.Duration(n) * time.Millisecond
		} else {
			log.Printf("WARNING: invalid STEPCHAIN_DEFAULT_TIMEOUT_MS %q, using default %s", v, cfg.DefaultTimeout)
		}
	}

	if isTruthy(os.Getenv("STEPCHAIN_DISABLE_LOGGING")) {
		cfg.DisableLogging = true
	}
	if isTruthy(os.Getenv("STEPCHAIN_DISABLE_RESULT_CACHE")) {
		cfg.EnableResultCache = false
	}

	return cfg
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
