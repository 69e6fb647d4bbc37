// Package config loads host settings and game rules from defaults, an
// optional config file and ASTEROIDS_* environment variables.
package config

import "os"

// ConfigPathEnv names the variable pointing at a config file.
const ConfigPathEnv = EnvPrefix + "_CONFIG"

// DefaultConfigFile is picked up from the working directory when
// ConfigPathEnv is unset.
const DefaultConfigFile = "asteroids.yaml"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ConfigPath returns the config file to pass to Load. An explicitly empty
// ConfigPathEnv disables the file lookup.
func ConfigPath() string {
	if path, ok := os.LookupEnv(ConfigPathEnv); ok {
		return path
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}
