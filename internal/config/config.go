package config

import "os"

type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	GoogleClientIDs   string
	FCMServiceAccount string
	OpenAIAPIKey      string
	OpenAIModel       string
	MPAccessToken     string
	AppBaseURL        string
}

func Load() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "tryly.db"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:              getEnv("PORT", "8080"),
		GoogleClientIDs:   getEnv("GOOGLE_CLIENT_IDS", ""),
		FCMServiceAccount: getEnv("FCM_SERVICE_ACCOUNT", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MPAccessToken:     getEnv("MP_ACCESS_TOKEN", ""),
		AppBaseURL:        getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
