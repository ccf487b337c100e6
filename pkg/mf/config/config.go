// Package config provides the functionality to read configurations defined
// for the moving features server, either from the process environment or
// from a .env file.
package config

// Config provides the functionality to read configurations defined for the application.
type Config interface {
	// Get returns the config value for a particular config key.
	Get(string) string
	// GetOrDefault returns the config value for a particular config key or returns a default value if not present.
	GetOrDefault(string, string) string
}
