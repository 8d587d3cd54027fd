package config

import (
	"log"
	"os"
)

// Config is read once at startup and passed by parameter; nothing mutates it
// afterwards.
type Config struct {
	Port string

	TelegramBotToken string
	WebhookURL       string // empty -> long polling

	GeminiAPIKey string
	GeminiModel  string

	DatabaseURL string // empty -> degraded store, grading still works per message
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		TelegramBotToken: mustEnv("TELEGRAM_BOT_TOKEN"),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
	}
}
