package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"venuelink/internal/admin"
	"venuelink/internal/auth"
	"venuelink/internal/cache"
	"venuelink/internal/client"
	"venuelink/internal/clock"
	"venuelink/internal/config"
	"venuelink/internal/lib/logger/handlers/slogpretty"
	"venuelink/internal/lib/logger/sl"
	"venuelink/internal/models"
	"venuelink/internal/search"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Debug("Debug messages are enabled")

	user := auth.User{
		ID:   os.Getenv("VENUELINK_USER_ID"),
		Role: auth.Role(os.Getenv("VENUELINK_ROLE")),
	}

	api, err := client.New(log, client.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.RequestTimeout,
		MaxRetries:     cfg.API.MaxRetries,
		RetryBaseDelay: cfg.API.RetryBaseDelay,
		Tokens:         auth.Static(os.Getenv("VENUELINK_TOKEN")),
		OnAuthFailure: func() {
			log.Warn("session expired, please sign in again")
		},
	})
	if err != nil {
		log.Error("failed to init api client", sl.Err(err))
		os.Exit(1)
	}

	store := cache.NewStore(log, clock.NewSystem(), cfg.Cache.GCWindow)

	app := &app{
		log:   log,
		cfg:   cfg,
		api:   api,
		store: store,
		user:  user,
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	defer stop()

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Error("command failed", sl.Err(err))
		os.Exit(1)
	}
}

type app struct {
	log   *slog.Logger
	cfg   *config.Config
	api   *client.Client
	store *cache.Store
	user  auth.User
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "venues":
		return a.venues(ctx, args)
	case "venue":
		return a.venue(ctx, args)
	case "bookings":
		return a.bookings(ctx, args)
	case "stats":
		return a.stats(ctx, args)
	case "accept":
		return a.action(ctx, admin.ActionAccept, args)
	case "decline":
		return a.action(ctx, admin.ActionDecline, args)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *app) venues(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("venues", flag.ContinueOnError)
	venueType := fs.String("type", "", "venue type filter (bar|restaurant|event_space|cafe)")
	searchTerm := fs.String("search", "", "text search")
	page := fs.Int("page", search.DefaultPage, "page number")

	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := search.Filters{
		Search:   *searchTerm,
		Page:     *page,
		PageSize: a.cfg.Search.PageSize,
	}
	if models.ValidVenueType(*venueType) {
		filters.Type = models.VenueType(*venueType)
	}

	key := cache.VenueListKey(string(filters.Type), filters.Search, filters.Page, filters.PageSize)

	result, err := cache.Read(ctx, a.store, key, a.cfg.Cache.VenueStaleAfter,
		func(ctx context.Context) (models.VenuePage, error) {
			return a.api.ListVenues(ctx, client.VenueListParams{
				Type:     filters.Type,
				Search:   filters.Search,
				Page:     filters.Page,
				PageSize: filters.PageSize,
			})
		})
	if err != nil {
		return err
	}

	return printJSON(result)
}

func (a *app) venue(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: venuelink venue <id>")
	}

	id := args[0]

	venue, err := cache.Read(ctx, a.store, cache.VenueKey(id), a.cfg.Cache.VenueStaleAfter,
		func(ctx context.Context) (models.Venue, error) {
			return a.api.GetVenue(ctx, id)
		})
	if err != nil {
		return err
	}

	return printJSON(venue)
}

func (a *app) bookings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ContinueOnError)
	status := fs.String("status", "", "booking status filter")
	page := fs.Int("page", search.DefaultPage, "page number")

	if err := fs.Parse(args); err != nil {
		return err
	}

	key := cache.MyBookingsKey(*status, *page, a.cfg.Search.PageSize)

	result, err := cache.Read(ctx, a.store, key, a.cfg.Cache.BookingStaleAfter,
		func(ctx context.Context) (models.BookingPage, error) {
			return a.api.ListMyBookings(ctx, client.MyBookingsParams{
				Status:   models.BookingStatus(*status),
				Page:     *page,
				PageSize: a.cfg.Search.PageSize,
			})
		})
	if err != nil {
		return err
	}

	return printJSON(result)
}

func (a *app) stats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep polling for near-real-time stats")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: venuelink stats <venue-id> [--watch]")
	}

	if !auth.HasRole(a.user, auth.RoleVenueAdmin) {
		return fmt.Errorf("stats requires the venue_admin role")
	}

	venueID := fs.Arg(0)
	key := cache.VenueStatsKey(venueID)

	fetch := func(ctx context.Context) (models.VenueStats, error) {
		return a.api.GetVenueStats(ctx, venueID)
	}

	stats, err := cache.Read(ctx, a.store, key, a.cfg.Cache.StatsStaleAfter, fetch)
	if err != nil {
		return err
	}

	if err := printJSON(stats); err != nil {
		return err
	}

	if !*watch {
		return nil
	}

	poller := cache.NewPoller(a.log, a.cfg.Cache.StatsPollInterval, func(ctx context.Context) error {
		stats, err := cache.Refetch(ctx, a.store, key, a.cfg.Cache.StatsStaleAfter, fetch)
		if err != nil {
			return err
		}

		return printJSON(stats)
	})

	a.log.Info("watching stats",
		slog.String("venue_id", venueID),
		slog.Duration("interval", a.cfg.Cache.StatsPollInterval),
	)

	poller.Run(ctx)

	a.log.Info("stopped watching stats")

	return nil
}

func (a *app) action(ctx context.Context, act admin.Action, args []string) error {
	fs := flag.NewFlagSet(string(act), flag.ContinueOnError)
	venueID := fs.String("venue", "", "venue the booking belongs to")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || *venueID == "" {
		return fmt.Errorf("usage: venuelink %s --venue <venue-id> <booking-id>", act)
	}

	if !auth.HasRole(a.user, auth.RoleVenueAdmin) {
		return fmt.Errorf("%s requires the venue_admin role", act)
	}

	pipeline := admin.New(a.log, a.store, a.api, *venueID)

	return pipeline.Perform(ctx, fs.Arg(0), act)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: venuelink <command> [flags]

commands:
  venues   [--type t] [--search s] [--page n]   browse venues
  venue    <id>                                 venue details
  bookings [--status s] [--page n]              my organization's bookings
  stats    <venue-id> [--watch]                 venue stats (admin)
  accept   --venue <venue-id> <booking-id>      accept a booking (admin)
  decline  --venue <venue-id> <booking-id>      decline a booking (admin)`)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stderr)

	return slog.New(h)
}
