package shared

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	BackendCSV   = "csv"
	BackendMySQL = "mysql"
)

type Config struct {
	AppEnv       string
	HotelName    string
	HotelAddress string
	DataDir      string
	ReceiptDir   string
	StoreBackend string
	MySQLDSN     string
	RedisAddr    string // empty disables the report cache
	RedisDB      int
	RedisPass    string
	CacheTTL     time.Duration
	MetricsAddr  string
	ReportsAddr  string

	// ReportsReload bounds how stale the reports API may serve rooms and
	// customers; 0 reloads only when the summary cache misses.
	ReportsReload time.Duration

	AdminPassword     string
	AdminPasswordHash string
	AdminAttempts     int

	BookingCooldown  time.Duration
	UpgradeBasePrice float64
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be read")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}

	dataDir := env("DATA_DIR", "data")
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HotelName:    env("HOTEL_NAME", "Grand Hotel"),
		HotelAddress: env("HOTEL_ADDRESS", "123 Main St"),
		DataDir:      dataDir,
		ReceiptDir:   env("RECEIPT_DIR", filepath.Join(dataDir, "receipts")),
		StoreBackend: env("STORE_BACKEND", BackendCSV),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		ReportsAddr:  env("REPORTS_ADDR", ":8080"),

		ReportsReload: time.Duration(atoi("REPORTS_RELOAD_SECONDS", 5)) * time.Second,

		AdminPassword:     env("ADMIN_PASSWORD", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminAttempts:     atoi("ADMIN_ATTEMPTS_PER_MINUTE", 3),

		BookingCooldown:  time.Duration(atoi("BOOKING_COOLDOWN_SECONDS", 60)) * time.Second,
		UpgradeBasePrice: atof("UPGRADE_BASE_PRICE", 100),
	}
	if c.StoreBackend != BackendCSV && c.StoreBackend != BackendMySQL {
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, using csv")
		c.StoreBackend = BackendCSV
	}
	if c.AdminPasswordHash == "" && os.Getenv("ADMIN_PASSWORD") == "" {
		log.Warn().Msg("ADMIN_PASSWORD is empty, using the default password")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
