package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/models"
)

type Config struct {
	Port     string
	LogLevel string

	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	JWTSecret      []byte
	AccessTTLMin   int
	RefreshTTLDays int

	OTPTTLMin        int
	OTPRateWindowMin int
	OTPRateMax       int

	UnlockTariff int

	SMSProvider      string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	IDPSecret []byte

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	KafkaAddress string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		Port:     EnvDefault("PORT", "8080"),
		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     os.Getenv("DB_NAME"),

		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		AccessTTLMin:   EnvIntDefault("ACCESS_TTL_MIN", 15),
		RefreshTTLDays: EnvIntDefault("REFRESH_TTL_DAYS", 7),

		OTPTTLMin:        EnvIntDefault("OTP_TTL_MIN", 5),
		OTPRateWindowMin: EnvIntDefault("OTP_RATE_WINDOW_MIN", 10),
		OTPRateMax:       EnvIntDefault("OTP_RATE_MAX", 3),

		UnlockTariff: EnvIntDefault("UNLOCK_TARIFF", 99),

		SMSProvider:      EnvDefault("SMS_PROVIDER", "console"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		IDPSecret: []byte(os.Getenv("IDP_SECRET")),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),

		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),
	}

	MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return cfg, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Worker{},
		&models.OTPCode{},
		&models.Unlock{},
		&models.Review{},
		&models.Favorite{},
		&models.RefreshToken{},
	)
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
