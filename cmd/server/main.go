package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/agent"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/infrastructure/storage"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/server"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/version"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env не обязателен: в контейнере переменные приходят снаружи
	envErr := godotenv.Load()
	logger.Init()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Log.WithError(envErr).Warn("Failed to read .env")
	}

	// 1. Парсинг конфигурации
	var (
		seed       int64
		configPath string
		replayPath string
		dbPath     string
		bots       int
	)
	flag.Int64Var(&seed, "seed", 0, "Master pile seed (0 for random per session)")
	flag.StringVar(&configPath, "config", envOr("WP_CONFIG", ""), "Path to tuning YAML")
	flag.StringVar(&replayPath, "replay", "", "Path to .wprp replay file to simulate")
	flag.StringVar(&dbPath, "db", envOr("WP_DB", "data/highscores.db"), "Path to highscores SQLite file (empty disables)")
	flag.IntVar(&bots, "bots", 0, "Number of demo bots playing alongside real players")
	flag.Parse()

	logger.Log.Info("Starting Within the Woodpile...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load config")
		}
		cfg = loaded
		logger.Log.WithField("path", configPath).Info("Config loaded")
	}
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	}

	replays, err := storage.NewReplayService(envOr("WP_REPLAY_DIR", "replays"))
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to prepare replay dir")
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		runReplay(cfg, replays, replayPath)
		return
	}

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg)
	gameService.Replays = replays

	if dbPath != "" {
		scores, err := storage.OpenHighscores(dbPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to open highscores")
		}
		defer scores.Close()
		gameService.Scores = scores
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i := 0; i < bots; i++ {
		startBot(ctx, gameService, i)
	}

	// 3. Запуск сервера
	srv := server.New(gameService, envOr("WP_PORT", "8080"))
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server error")
	}

	logger.Log.Info("Shutting down...")
	// Закрываем все партии: реплеи и рекорды сохраняются здесь
	gameService.Shutdown()
	logger.Log.Info("Done.")
}

func runReplay(cfg engine.Config, replays *storage.ReplayService, path string) {
	logger.Log.Info("💿 Mode: Replay Simulation")

	replay, err := replays.Load(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load replay")
	}

	gameService := engine.NewService(cfg)
	session, err := gameService.Playback(replay)
	if err != nil {
		logger.Log.WithError(err).Fatal("Playback failed")
	}

	summary := session.Summary()
	logger.Log.WithFields(logrus.Fields{
		"name":    replay.Name,
		"seed":    replay.Seed,
		"actions": len(replay.Actions),
		"score":   summary.Score,
		"level":   summary.Level,
		"health":  summary.Health,
		"status":  summary.Status,
	}).Info("Replay finished")
}

// startBot запускает бота в своей сессии. Доиграв, бот начинает новую партию.
func startBot(ctx context.Context, service *engine.GameService, n int) {
	name := fmt.Sprintf("bot-%d", n+1)
	go func() {
		for ctx.Err() == nil {
			bot, err := agent.NewBot(service, name, 0)
			if err != nil {
				logger.Log.WithError(err).WithField("bot", name).Warn("Bot could not start")
				return
			}
			bot.MaxLevels = 3
			bot.Delay = 400 * time.Millisecond
			bot.Run(ctx)
			_ = service.CloseSession(bot.SessionID)
		}
	}()
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
