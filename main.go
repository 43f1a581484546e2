package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"TripBot/catalog"
	"TripBot/config"
	"TripBot/handler"
	"TripBot/message"
	"TripBot/repo"
	"TripBot/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backend, err := InitializeBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Error initializing store backend")
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("Error loading catalog")
		}
	}

	store := repo.NewStore(backend,
		repo.WithNamespace(cfg.StoreNamespace),
		repo.WithLogger(log.With().Str("component", "store").Logger()),
		repo.WithDefaultQuestions(cat.DefaultQuestions),
	)
	svc := service.New(store, cat, message.New(),
		service.WithLogger(log.With().Str("component", "service").Logger()))

	g, ctx := errgroup.WithContext(ctx)
	if cfg.ParticipantBotToken != "" {
		h := handler.NewParticipantBotHandler(svc, log.With().Str("bot", "participant").Logger())
		if err := startBot(ctx, g, cfg.ParticipantBotToken, h.Handler); err != nil {
			log.Fatal().Err(err).Msg("error creating participant bot")
		}
	}
	if cfg.OrganiserBotToken != "" {
		h := handler.NewOrganiserBotHandler(svc, log.With().Str("bot", "organiser").Logger())
		if err := startBot(ctx, g, cfg.OrganiserBotToken, h.Handler); err != nil {
			log.Fatal().Err(err).Msg("error creating organiser bot")
		}
	}

	log.Info().Str("backend", cfg.StoreBackend).Str("namespace", cfg.StoreNamespace).Msg("Bots started")
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Bot stopped with error")
	}
	log.Info().Msg("Bots stopped")
}

// startBot runs one long-polling bot until ctx is done.
func startBot(ctx context.Context, g *errgroup.Group, token string, fn bot.HandlerFunc) error {
	b, err := bot.New(token, bot.WithDefaultHandler(fn))
	if err != nil {
		return err
	}
	g.Go(func() error {
		b.Start(ctx)
		return nil
	})
	return nil
}

// InitializeBackend opens the key-value backend named by the configuration.
func InitializeBackend(ctx context.Context, cfg *config.Config) (repo.Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendFirebase:
		fb, err := repo.NewFirebaseBackend(ctx, cfg.FirebaseServiceAccountKeyPath, cfg.FirebaseDatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("error creating Firebase backend: %w", err)
		}
		return fb, nil
	case config.BackendSQLite:
		db, err := repo.NewSQLiteBackend(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("error opening sqlite backend: %w", err)
		}
		return db, nil
	case config.BackendRedis:
		rdb, err := repo.NewRedisBackend(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		return rdb, nil
	default:
		return repo.NewMemoryBackend(), nil
	}
}
