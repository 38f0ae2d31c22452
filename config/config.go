package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DBPath        string
	UploadDir     string
	AdminName     string
	AdminLogin    string
	AdminPassword string
}

// Load reads configuration from the environment, with a .env file as an
// optional source. Missing keys fall back to development defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("ADDR", ":3000"),
		DBPath:        getEnv("DB_PATH", "database.db"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		AdminLogin:    getEnv("ADMIN_LOGIN", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
