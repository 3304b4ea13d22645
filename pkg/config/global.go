package config

import (
	"sync"
)

var (
	// global is the singleton configuration instance
	global   *Config
	globalMu sync.Mutex
)

// Initialize loads the configuration file and installs it as the global
// instance. Call once at startup; later calls replace the instance.
func Initialize(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	global = cfg
	return nil
}

// Global returns the global configuration.
// Panics if Initialize has not been called.
func Global() *Config {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return global
}

// IsInitialized returns true if the global configuration has been loaded.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global != nil
}

// SetGlobal installs a configuration directly, bypassing the file load.
// Intended for tests and for callers that build a Config in code.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = cfg
}
