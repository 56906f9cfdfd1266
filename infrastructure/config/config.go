package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Graph store configuration
	Neo4jURI              string
	Neo4jUser             string
	Neo4jPassword         string
	Neo4jMaxRetries       int
	Neo4jRetryIntervalSec int

	// Worker process configuration
	BuilderCommand  string
	EnricherCommand string
	LaunchProbeMS   int
	StopGraceSec    int

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		Neo4jURI:              getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:             getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:         getEnv("NEO4J_PASSWORD", ""),
		Neo4jMaxRetries:       getEnvInt("NEO4J_MAX_RETRIES", 10),
		Neo4jRetryIntervalSec: getEnvInt("NEO4J_RETRY_INTERVAL_SECS", 3),

		BuilderCommand:  getEnv("BUILDER_COMMAND", "graph-builder"),
		EnricherCommand: getEnv("ENRICHER_COMMAND", "graph-enricher"),
		LaunchProbeMS:   getEnvInt("LAUNCH_PROBE_MS", 500),
		StopGraceSec:    getEnvInt("STOP_GRACE_SECS", 5),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.BuilderCommand == "" {
		return fmt.Errorf("BUILDER_COMMAND is required")
	}
	if c.EnricherCommand == "" {
		return fmt.Errorf("ENRICHER_COMMAND is required")
	}
	if c.Environment == "production" && c.Neo4jPassword == "" {
		return fmt.Errorf("NEO4J_PASSWORD is required in production")
	}
	if c.LaunchProbeMS <= 0 {
		return fmt.Errorf("LAUNCH_PROBE_MS must be positive")
	}
	if c.StopGraceSec <= 0 {
		return fmt.Errorf("STOP_GRACE_SECS must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
