package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	AppEnv          string
	MongoURI        string
	MongoDB         string
	UserServiceURL  string
	CatalogURL      string
	UpstreamTimeout time.Duration
	FrontendURL     string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	timeoutSeconds, err := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "5"))
	if err != nil || timeoutSeconds <= 0 {
		timeoutSeconds = 5
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		AppEnv:          getEnv("APP_ENV", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "tripspark"),
		UserServiceURL:  getEnv("USER_SERVICE_URL", "http://localhost:8081"),
		CatalogURL:      getEnv("CATALOG_SERVICE_URL", "http://localhost:8082"),
		UpstreamTimeout: time.Duration(timeoutSeconds) * time.Second,
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
