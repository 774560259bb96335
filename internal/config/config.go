package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Cloudinary image hosting
	CloudinaryURL string
	UploadPreset  string
	UploadFolder  string

	// Image classifier
	ClassifierURL     string
	ClassifierTimeout time.Duration

	// Report submission staleness guard (0 disables it)
	ReportMaxAge time.Duration

	// Server
	Port        string
	CORSOrigins string
	BodyLimit   int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fixmycity_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "360h"), 360*time.Hour),

		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		UploadPreset:  getEnv("CLOUDINARY_UPLOAD_PRESET", "fix-my-city"),
		UploadFolder:  getEnv("CLOUDINARY_FOLDER", "fix-my-city"),

		ClassifierURL:     getEnv("CLASSIFIER_URL", "http://localhost:8000/predict"),
		ClassifierTimeout: parseDuration(getEnv("CLASSIFIER_TIMEOUT", "30s"), 30*time.Second),

		ReportMaxAge: parseDuration(getEnv("REPORT_MAX_AGE", "0"), 0),

		Port:        getEnv("PORT", "3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		// Report images travel as base64 data URLs inside the JSON body.
		BodyLimit: 15 * 1024 * 1024,
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
