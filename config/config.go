package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const defaultJWTSecret = "default_secret_key_change_this"

type Config struct {
	AppEnv string
	Port   string

	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	DBMaxOpenConns int
	DBMaxIdleConns int

	JWTSecret    string
	JWTExpiresIn time.Duration

	GoogleClientID string
	GoogleCertsURL string

	Location    *time.Location
	LogLevel    string
	CORSOrigins []string

	// Tarif tetap yang dibebankan pada setiap transaksi kunjungan.
	TarifPendaftaran decimal.Decimal
	TarifPemeriksaan decimal.Decimal
}

// LoadConfig membaca .env (jika ada) lalu environment variable.
// Nilai kosong diganti default yang aman untuk pengembangan lokal.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found. Relying on environment variables.")
	}

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "5000"),
		DBUser:         getEnv("DB_USER", "root"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBName:         getEnv("DB_NAME", "puskesmas_db"),
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleCertsURL: getEnv("GOOGLE_CERTS_URL", "https://www.googleapis.com/oauth2/v3/certs"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 20); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}

	cfg.JWTExpiresIn, err = time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}

	cfg.Location, err = time.LoadLocation(getEnv("TZ_LOCATION", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("TZ_LOCATION: %w", err)
	}

	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.TarifPendaftaran, err = getDecimal("TARIF_PENDAFTARAN", "10000"); err != nil {
		return nil, err
	}
	if cfg.TarifPemeriksaan, err = getDecimal("TARIF_PEMERIKSAAN", "50000"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate menolak start di production bila JWT_SECRET masih default.
func (c *Config) Validate() error {
	if c.JWTSecret == defaultJWTSecret {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET wajib diisi pada APP_ENV=production")
		}
		log.Warn().Msg("JWT_SECRET memakai nilai default, jangan dipakai di produksi")
	}
	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN harus lebih dari 0")
	}
	if c.TarifPendaftaran.IsNegative() || c.TarifPemeriksaan.IsNegative() {
		return fmt.Errorf("tarif tidak boleh negatif")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDecimal(key, fallback string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
