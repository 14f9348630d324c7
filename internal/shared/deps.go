package shared

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	redisad "hotel_console/internal/adapters/redis"
	"hotel_console/internal/app"
	"hotel_console/internal/domain"
	"hotel_console/internal/storage/csvfile"
	mysqlrepo "hotel_console/internal/storage/mysql"
)

// OpenStore returns the configured persistence backend. closeFn releases the
// database handle when there is one.
func OpenStore(ctx context.Context, cfg Config) (st domain.Store, closeFn func() error, err error) {
	if cfg.StoreBackend != BackendMySQL {
		log.Info().Str("dir", cfg.DataDir).Msg("using csv store")
		return csvfile.New(cfg.DataDir), func() error { return nil }, nil
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db.Ping: %w", err)
	}
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, db.Close, nil
}

// OpenCache returns nil when REDIS_ADDR is unset or unreachable; reports are
// then computed on every request.
func OpenCache(ctx context.Context, cfg Config) domain.Cache {
	if cfg.RedisAddr == "" {
		return nil
	}
	c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, report cache disabled")
		return nil
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("report cache enabled")
	return c
}

// AdminGate prefers ADMIN_PASSWORD_HASH and hashes ADMIN_PASSWORD otherwise.
func AdminGate(cfg Config) (*app.AdminGate, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		var err error
		if hash, err = app.HashPassword(cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}
	return app.NewAdminGate(hash, cfg.AdminAttempts), nil
}

// HotelOptions maps the config onto app.Hotel options.
func HotelOptions(cfg Config, cache domain.Cache) []app.Option {
	opts := []app.Option{
		app.WithBookingCooldown(cfg.BookingCooldown),
		app.WithUpgradeBasePrice(cfg.UpgradeBasePrice),
	}
	if cache != nil {
		opts = append(opts, app.WithCache(cache))
	}
	return opts
}
