package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-arena/internal/arena"
	"github.com/rocketscienceinc/tictactoe-arena/internal/config"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
	"github.com/rocketscienceinc/tictactoe-arena/transport/rest"
	"github.com/rocketscienceinc/tictactoe-arena/transport/tcp"
	"github.com/rocketscienceinc/tictactoe-arena/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// Match history is write-only observability: the board is never
	// restored from redis, and the server keeps playing without it.
	var matchRepo repository.MatchRepository

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		log.Error("match history disabled, could not connect to redis storage", "error", err)
	} else {
		defer func() {
			if closeErr := redisStorage.Close(); closeErr != nil {
				log.Error("could not close redis storage", "error", closeErr)
			}
		}()

		matchRepo = repository.NewMatchRepository(redisStorage.Client)
	}

	gameState := entity.NewGame()
	registry := session.NewRegistry(logger, conf.MaxSessions)

	// A bind failure on the game port prevents listening entirely and
	// fails startup.
	tcpServer, err := tcp.New(logger, conf.GamePort)
	if err != nil {
		return fmt.Errorf("could not start game transport: %w", err)
	}
	defer func() {
		if closeErr := tcpServer.Close(); closeErr != nil {
			log.Error("could not close game transport", "error", closeErr)
		}
	}()

	log.Info("Starting TCP transport", "addr", tcpServer.Addr())
	tcpServer.Start(ctx)

	wsServer := websocket.New(logger)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket transport
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket transport", "port", conf.SocketPort)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket transport error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	// run arena loop
	loopErrCh := make(chan error, 1)
	go func() {
		loop := arena.New(logger, gameState, registry, matchRepo, conf.TickInterval(), tcpServer, wsServer)
		if loopErr := loop.Run(ctx); loopErr != nil {
			log.Error("arena loop error", "error", loopErr)
			loopErrCh <- loopErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket transport error: %w", err)
	case err = <-loopErrCh:
		return fmt.Errorf("arena loop error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
