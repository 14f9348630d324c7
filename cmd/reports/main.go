package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_console/internal/adapters/http_server"
	"hotel_console/internal/adapters/observability"
	"hotel_console/internal/app"
	"hotel_console/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	store, closeStore, err := shared.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("open store failed")
	}
	defer func() { _ = closeStore() }()

	// read-only: hotels are rebuilt from the store and never saved back.
	// They carry no cache, so a reload does not evict the summary.
	load := func(ctx context.Context) (*app.Hotel, error) {
		snap, _, err := store.Load(ctx)
		if err != nil {
			return nil, err
		}
		h := app.NewHotel(cfg.HotelName, cfg.HotelAddress, shared.HotelOptions(cfg, nil)...)
		h.Restore(ctx, snap)
		return h, nil
	}
	live, err := app.NewLiveHotel(ctx, load, cfg.ReportsReload, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("load failed")
	}
	cache := shared.OpenCache(ctx, cfg)

	gate, err := shared.AdminGate(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("admin gate init failed")
	}

	srv := server.NewReports(&server.Handlers{
		Hotels:  live,
		Reports: app.NewLiveReportService(live, cache, cfg.CacheTTL),
		Gate:    gate,
	}, observability.MetricsHandler(observability.InitRegistry()))

	log.Info().Str("addr", cfg.ReportsAddr).Int("rooms", live.Current(ctx).TotalRooms()).Dur("reload", cfg.ReportsReload).Msg("reports API listening")
	httpSrv := &http.Server{Addr: cfg.ReportsAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
