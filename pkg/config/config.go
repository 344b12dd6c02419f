package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Message store backends
const (
	MessageStorePostgres = "postgres"
	MessageStoreMongo    = "mongo"
)

// Auth providers
const (
	AuthProviderJWT      = "jwt"
	AuthProviderFirebase = "firebase"
)

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	PostgresURL             string
	MongoURI                string
	MongoDatabase           string
	MessageStore            string
	AuthProvider            string
	JWTSecret               string
	FirebaseCredentialsPath string
}

// Load reads configuration from the environment, after loading a .env file if one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		PostgresURL:             getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "bookhearts"),
		MessageStore:            getEnv("MESSAGE_STORE", MessageStorePostgres),
		AuthProvider:            getEnv("AUTH_PROVIDER", AuthProviderJWT),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks the settings needed to serve requests.
func (c *Config) Validate() error {
	if c.PostgresURL == "" {
		return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}

	switch c.MessageStore {
	case MessageStorePostgres:
	case MessageStoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when MESSAGE_STORE=%s", MessageStoreMongo)
		}
	default:
		return fmt.Errorf("unknown MESSAGE_STORE %q", c.MessageStore)
	}

	switch c.AuthProvider {
	case AuthProviderJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_PROVIDER=%s", AuthProviderJWT)
		}
	case AuthProviderFirebase:
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_PROVIDER=%s", AuthProviderFirebase)
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
