package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"hotel_console/internal/adapters/console"
	"hotel_console/internal/adapters/observability"
	"hotel_console/internal/app"
	"hotel_console/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// logs go to stderr, tagged with this session's id
	log.Logger = observability.WithSession(observability.NewLogger(cfg.AppEnv))

	observability.Serve(cfg.MetricsAddr)

	store, closeStore, err := shared.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("open store failed")
	}
	defer func() { _ = closeStore() }()

	cache := shared.OpenCache(ctx, cfg)
	hotel := app.NewHotel(cfg.HotelName, cfg.HotelAddress, shared.HotelOptions(cfg, cache)...)

	snap, rep, err := store.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load failed")
	}
	hotel.Restore(ctx, snap)
	if n := len(rep.Skipped); n > 0 {
		fmt.Printf("Warning: skipped %d corrupted record(s) while loading.\n", n)
	}
	log.Info().
		Int("rooms", hotel.TotalRooms()).
		Int("customers", len(hotel.Customers())).
		Int("reservations", len(hotel.Reservations())).
		Msg("data loaded")

	if hotel.TotalRooms() == 0 {
		for _, r := range shared.DefaultRooms() {
			if err := hotel.AddRoom(r); err != nil {
				log.Fatal().Err(err).Msg("seed rooms failed")
			}
		}
		log.Info().Int("rooms", hotel.TotalRooms()).Msg("seeded default rooms")
	}

	gate, err := shared.AdminGate(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("admin gate init failed")
	}

	c := console.New(console.Deps{
		Hotel:      hotel,
		Reports:    app.NewReportService(hotel, cache, cfg.CacheTTL),
		Gate:       gate,
		Store:      store,
		ReceiptDir: cfg.ReceiptDir,
	}, os.Stdin, os.Stdout)
	if err := c.Run(ctx); err != nil {
		log.Error().Err(err).Msg("session ended without saving")
		_ = closeStore()
		os.Exit(1)
	}
}
