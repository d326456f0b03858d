package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/cli"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var (
	ErrAddrNotFound     = errors.New("redis address string is empty")
	ErrUnknownStoreType = errors.New("unknown store type")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config, args []string) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	matchRepo, closeStore, err := newMatchRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := bot.NewLockedRand(seed)

	starter, err := usecase.NewStarter(conf.FirstTurn, rnd)
	if err != nil {
		return fmt.Errorf("invalid first turn setting: %w", err)
	}

	gameManager := usecase.NewGameManager(logger, matchRepo, starter, rnd)

	log.Debug("Starting", "store", conf.Store.Type, "seed", seed)

	return cli.Execute(ctx, logger, gameManager, conf, args)
}

func newMatchRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.MatchRepository, func(), error) {
	switch conf.Store.Type {
	case config.StoreMemory, "":
		return repository.NewMemoryMatchRepository(), func() {}, nil

	case config.StoreRedis:
		redisAddrString := conf.Store.Redis.GetRedisAddr()
		if conf.Store.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeStore := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewMatchRepository(redisStorage.Connection, conf.Store.MatchTTL), closeStore, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStoreType, conf.Store.Type)
	}
}
