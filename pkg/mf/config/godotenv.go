// Package config provides the functionality to read environment variables,
// either from the process environment or from static .env config files.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type GoDotEnvProvider struct {
	// contains unexported fields
	configFolder string
	logger       logger
}

type logger interface {
	Log(args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, a ...interface{})
	Error(args ...interface{})
	Errorf(format string, a ...interface{})
	Info(args ...interface{})
	Infof(format string, a ...interface{})
}

// NewGoDotEnvProvider creates a new instance of GoDotEnvProvider.
func NewGoDotEnvProvider(l logger, configFolder string) *GoDotEnvProvider {
	provider := &GoDotEnvProvider{
		configFolder: configFolder,
		logger:       l,
	}

	provider.readConfig(configFolder)

	return provider
}

// readConfig loads the environment variables from a .env file.
// Priority order is Environment Variable > .X.env file > .env file;
// an override file is selected either by creating .local.env or by
// specifying the file prefix in environment variable MF_ENV.
func (g *GoDotEnvProvider) readConfig(confLocation string) {
	const env = ".env"

	var (
		defaultFile  = confLocation + "/" + env
		overrideFile = confLocation + "/.local" + env
	)

	mfEnv := g.Get("MF_ENV")
	if mfEnv != "" {
		overrideFile = confLocation + "/." + mfEnv + env
	}

	if err := godotenv.Load(overrideFile); err == nil {
		g.logger.Log("Loaded config from file: ", overrideFile)
	} else if mfEnv != "" { // log a warning if MF_ENV is set and the file could not be loaded
		g.logger.Warnf("Failed to load config from file: %v, Err: %v", overrideFile, err)
	}

	if err := godotenv.Load(defaultFile); err != nil {
		g.logger.Warnf("Failed to load config from file: %v, Err: %v", defaultFile, err)
	} else {
		g.logger.Log("Loaded config from file: ", defaultFile)
	}
}

// Get retrieves the value of an environment variable by its key.
func (g *GoDotEnvProvider) Get(key string) string {
	return os.Getenv(key)
}

// GetOrDefault retrieves the value of an environment variable by its key, or returns a default value
// if the variable is not set.
func (g *GoDotEnvProvider) GetOrDefault(key, defaultValue string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}

	return defaultValue
}

// StoreConnection is the connection descriptor the core expects for the
// spatiotemporal store: {host, port, dbname, user, password}.
type StoreConnection struct {
	Host     string
	Port     string
	DBName   string
	User     string
	Password string
}

// Connection reads the store connection descriptor from config, applying
// the defaults a local MobilityDB-backed Postgres instance would use.
func Connection(c Config) StoreConnection {
	return StoreConnection{
		Host:     c.GetOrDefault("DB_HOST", "localhost"),
		Port:     c.GetOrDefault("DB_PORT", "5432"),
		DBName:   c.GetOrDefault("DB_NAME", "mobilitydb"),
		User:     c.GetOrDefault("DB_USER", "docker"),
		Password: c.GetOrDefault("DB_PASSWORD", "docker"),
	}
}
