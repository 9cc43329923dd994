package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment after an
// optional .env file.
type Config struct {
	Port            string
	GinMode         string
	DatabaseURL     string
	DataPath        string
	JWTSecret       string
	AdminUsername   string
	AdminPassword   string
	RosterPath      string
	FontPath        string
	BoldFontPath    string
	HolidayAPI      string
	SessionLifetime time.Duration
}

// LoadDotEnv loads the first .env found in the working directory or its
// parents. Variables already set in the environment win.
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				log.Printf("could not load %s: %v", p, err)
			}
			return
		}
	}
}

// Load reads .env and the environment.
func Load() Config {
	LoadDotEnv()
	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() Config {
	c := Config{
		Port:          getenv("PORT", "8000"),
		GinMode:       os.Getenv("GIN_MODE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataPath:      getenv("DATA_PATH", "shifts.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		RosterPath:    os.Getenv("ROSTER_PATH"),
		FontPath:      getenv("PDF_FONT_PATH", "NotoSansJP-Regular.ttf"),
		BoldFontPath:  getenv("PDF_BOLD_FONT_PATH", "NotoSansJP-Bold.ttf"),
		HolidayAPI:    os.Getenv("HOLIDAY_API_URL"),
	}

	c.SessionLifetime = 12 * time.Hour
	if v := os.Getenv("SESSION_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("ignoring SESSION_LIFETIME=%q: %v", v, err)
		} else {
			c.SessionLifetime = d
		}
	}

	if c.JWTSecret == "" {
		log.Printf("JWT_SECRET is not set; editor tokens use an insecure development secret")
		c.JWTSecret = "dev-secret-change-me"
	}
	return c
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
