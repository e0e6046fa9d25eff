package config

import (
	"os"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerAddr string
	GinMode    string

	// StrictMembership additionally verifies writeable membership on every
	// mutating request instead of relying on the owner-name equality check
	// alone. Off by default to keep the historical behavior.
	StrictMembership bool
}

func Load() *Config {
	return &Config{
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBUser:           getEnv("DB_USER", "flower"),
		DBPassword:       getEnv("DB_PASSWORD", "flowerpassword"),
		DBName:           getEnv("DB_NAME", "flower"),
		ServerAddr:       getEnv("SERVER_ADDR", "0.0.0.0:8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		StrictMembership: getEnv("STRICT_MEMBERSHIP", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
