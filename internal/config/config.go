package config

import "os"

// Config represents the complete application configuration.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port    string
	GinMode string
}

// MongoConfig holds document-store connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// Load reads configuration from environment variables. Every setting has
// a local-development default, so Load never fails.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Mongo: MongoConfig{
			URI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnvOrDefault("MONGO_DB", "sheetstore"),
			Collection: getEnvOrDefault("MONGO_COLLECTION", "tables"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
