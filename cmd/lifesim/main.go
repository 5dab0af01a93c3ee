package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tatianab/lifesim/internal/config"
	"github.com/tatianab/lifesim/internal/engine"
	"github.com/tatianab/lifesim/internal/logging"
	"github.com/tatianab/lifesim/internal/models"
	"github.com/tatianab/lifesim/internal/narrator"
	redisstore "github.com/tatianab/lifesim/internal/storage/redis"
	sqlitestore "github.com/tatianab/lifesim/internal/storage/sqlite"
	"github.com/tatianab/lifesim/internal/tui"
)

const stepDelay = 700 * time.Millisecond

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logFile, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	deps := tui.Deps{
		Engine:    engine.NewEngine(engine.NewRandom(cfg.Seed), logger),
		Narrator:  narrator.Plain{},
		Logger:    logger,
		StepDelay: stepDelay,
	}

	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		deps.Store, deps.Leaderboard = db.Saves(), db.Leaderboard()
	default:
		deps.Store = models.NewFileStore(cfg.SaveDir)
		deps.Leaderboard = models.NewFileLeaderboard(cfg.SaveDir)
	}

	if cfg.RedisAddr != "" {
		lb, err := redisstore.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis leaderboard unavailable, keeping local one", "addr", cfg.RedisAddr, "err", err)
		} else {
			defer lb.Close()
			deps.Leaderboard = lb
		}
	}

	if cfg.Narrated() {
		g, err := narrator.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("gemini narration disabled", "err", err)
		} else {
			defer g.Close()
			deps.Narrator = g
		}
	}

	logger.Info("starting", "store", cfg.Store, "redis", cfg.RedisAddr != "", "narrated", cfg.Narrated(),
		"seed", cfg.Seed, "level", logger.GetLevel())
	return tui.Run(deps)
}
