package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
)

type GeocoderConfig struct {
	BaseUri   string
	UserAgent string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	DSN           string
	Port          string
	Environment   string
	SessionSecret string
	LogsDirectory string
	Redis         *RedisConfig
	Geocoder      *GeocoderConfig
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	redisDB, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		redisDB = 0
	}

	return &Config{
		DSN:           os.Getenv("DATABASE_DSN"),
		Port:          envOr("PORT", "3000"),
		Environment:   envOr("ENVIRONMENT", "development"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		LogsDirectory: os.Getenv("LOGS_DIRECTORY"),
		Redis: &RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Geocoder: &GeocoderConfig{
			BaseUri:   envOr("GEOCODER_BASE_URI", "https://nominatim.openstreetmap.org"),
			UserAgent: envOr("GEOCODER_USER_AGENT", "ShipmentTracker/1.0"),
		},
	}
}

// IsProduction reports whether cookies should carry the Secure attribute.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
