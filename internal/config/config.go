package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	DBDriver    string
	DBPath      string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	JWTTTLHours int
	UploadDir   string
}

func Load() *Config {
	// A missing .env is fine; env vars and defaults take over.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBPath:      getEnv("DB_PATH", "roomierules.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "roomie"),
		DBPassword:  getEnv("DB_PASSWORD", "roomiepassword"),
		DBName:      getEnv("DB_NAME", "roomierules"),
		JWTSecret:   getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 168),
		UploadDir:   getEnv("UPLOAD_DIR", "public/uploads/receipts"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
