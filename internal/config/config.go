package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN      string
	ServerPort string
	JWTSecret  string

	UploadDir string
	AvatarDir string

	// Google Cloud Storage bucket backing "drive" documents. Empty
	// disables the drive backend.
	DriveBucket string

	ResendAPIKey string
	SenderEmail  string

	CORSOrigins string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:        os.Getenv("DB_DSN"),
		ServerPort:   os.Getenv("SERVER_PORT"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		UploadDir:    os.Getenv("UPLOAD_DIR"),
		AvatarDir:    os.Getenv("AVATAR_DIR"),
		DriveBucket:  os.Getenv("DRIVE_BUCKET"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		SenderEmail:  os.Getenv("SENDER_EMAIL"),
		CORSOrigins:  os.Getenv("CORS_ORIGINS"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.AvatarDir == "" {
		cfg.AvatarDir = "avatars"
	}
	if cfg.SenderEmail == "" {
		cfg.SenderEmail = "onboarding@resend.dev"
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}

	return cfg
}
