package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/tomfleet/leaguesync/internal/api/espn"
	"github.com/tomfleet/leaguesync/internal/api/fantasy"
	"github.com/tomfleet/leaguesync/internal/api/sleeper"
	"github.com/tomfleet/leaguesync/internal/config"
	"github.com/tomfleet/leaguesync/internal/models"
	"github.com/tomfleet/leaguesync/internal/repository/memory"
	"github.com/tomfleet/leaguesync/internal/scheduler"
	"github.com/tomfleet/leaguesync/internal/service"
	"github.com/tomfleet/leaguesync/internal/statcache"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sleeperAPI := sleeper.NewAPI(sleeper.NewClient())
	if err := sleeperAPI.LoadPlayerDirectory(ctx); err != nil {
		return err
	}
	espnAPI := espn.NewAPI(espn.NewClient(cfg.ESPN), sleeperAPI)

	providers := map[models.Platform]fantasy.Provider{
		models.PlatformSleeper: sleeperAPI,
		models.PlatformESPN:    espnAPI,
	}
	credentials := map[models.Platform]string{
		models.PlatformSleeper: cfg.Sleeper.Username,
		models.PlatformESPN:    cfg.ESPN.SWID,
	}

	var cacheOpts []statcache.Option
	if cfg.Redis.Addr != "" {
		store := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cacheOpts = append(cacheOpts, statcache.WithWriteThrough(store))
	}
	cache := statcache.New(sleeperAPI, cfg.Engine.StatCacheTTL, cacheOpts...)

	repo := memory.NewRepository()
	aggregator := service.NewAggregatorService(providers, sleeperAPI, cache, repo, credentials, cfg.Engine.DefaultStdDev)

	var refs []service.LeagueRef
	for _, id := range cfg.Sleeper.LeagueIDs {
		refs = append(refs, service.LeagueRef{Platform: models.PlatformSleeper, ID: id})
	}
	for _, id := range cfg.ESPN.LeagueIDs {
		refs = append(refs, service.LeagueRef{Platform: models.PlatformESPN, ID: id})
	}

	sched, err := scheduler.NewScheduler(aggregator, refs)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(":80", nil); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
