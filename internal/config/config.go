package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Messaging provider credentials, sent as the Publicid and Secret headers
	APIPublicID  string
	APISecretKey string
	APIBaseURL   string

	TemplatesPath string

	DBDriver   string // sqlite or postgres
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		APIPublicID:   getEnv("API_PUBLIC_ID", ""),
		APISecretKey:  getEnv("API_SECRET_KEY", ""),
		APIBaseURL:    getEnv("API_BASE_URL", "https://apis.unifonic.com"),
		TemplatesPath: getEnv("TEMPLATES_PATH", "./data/templates.json"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBPath:        getEnv("DB_PATH", "./campaign.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "campaign"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
	}

	if !cfg.HasCredentials() {
		log.Println("Warning: API_PUBLIC_ID or API_SECRET_KEY not set, provider calls will fail")
	}

	return cfg
}

// HasCredentials reports whether both provider credentials are configured.
func (c *Config) HasCredentials() bool {
	return c.APIPublicID != "" && c.APISecretKey != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
