package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string
	LogFile   string
	GeminiKey string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "supermarket.db" // sqlite file in project root
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("[config] JWT_SECRET not set, using dev default")
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:      port,
		DBDSN:     dsn,
		JWTSecret: secret,
		LogFile:   logFile,
		GeminiKey: os.Getenv("GEMINI_API_KEY"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.LogFile)
	return cfg
}
