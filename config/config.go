package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken    string
	GoogleMapsAPIKey string
	DatabaseURL      string
	RadiusMeters     int
	MaxResults       int
	OperatorChatID   int64
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		DatabaseURL:      buildDatabaseURL(),
		RadiusMeters:     2000, // Default qiymat
		MaxResults:       10,
	}

	if raw := os.Getenv("SEARCH_RADIUS_METERS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("SEARCH_RADIUS_METERS noto'g'ri formatda: %v", err)
		}
		config.RadiusMeters = parsed
	}

	if raw := os.Getenv("MAX_RESULTS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MAX_RESULTS noto'g'ri formatda: %v", err)
		}
		config.MaxResults = parsed
	}

	if raw := os.Getenv("OPERATOR_CHAT_ID"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("OPERATOR_CHAT_ID noto'g'ri formatda: %v", err)
		}
		config.OperatorChatID = parsed
	}

	// Validatsiya
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	if config.GoogleMapsAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY environment variable bo'sh")
	}

	return config, nil
}

// buildDatabaseURL DATABASE_URL ni olish yoki PG* qismlardan yig'ish.
// Lokal bo'lmagan hostlar uchun sslmode=require qo'shiladi.
// Hech narsa topilmasa bo'sh satr qaytadi — storage memory rejimga o'tadi.
func buildDatabaseURL() string {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		host := os.Getenv("PGHOST")
		port := os.Getenv("PGPORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("PGUSER")
		pwd := os.Getenv("PGPASSWORD")
		db := os.Getenv("PGDATABASE")
		if host != "" && user != "" && pwd != "" && db != "" {
			url = fmt.Sprintf("postgresql://%s:%s@%s:%s/%s", user, pwd, host, port, db)
		}
	}
	if url == "" {
		return ""
	}

	lower := strings.ToLower(url)
	isLocal := strings.Contains(lower, "localhost") || strings.Contains(lower, "127.0.0.1")
	if !strings.Contains(lower, "sslmode=") && !isLocal {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url = url + sep + "sslmode=require"
	}
	return url
}
