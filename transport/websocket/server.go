// Package websocket is the second transport adapter: the same
// pipe-delimited payload grammar carried in websocket text messages.
// The websocket layer supplies its own framing, so the 4-byte length
// prefix of the TCP wire does not apply here.
package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
)

const acceptBacklog = 64

type Server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	accepted chan *Conn
}

func New(logger *slog.Logger) *Server {
	return &Server{
		logger: logger.With("component", "websocket_transport"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		accepted: make(chan *Conn, acceptBacklog),
	}
}

// Start - serves the /ws endpoint until the listener fails or the
// context is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.HandleUpgrade)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// HandleUpgrade - upgrades the connection and hands it to the arena.
func (that *Server) HandleUpgrade(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "HandleUpgrade")

	raw, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConn(raw)
	go conn.readLoop()

	select {
	case that.accepted <- conn:
		log.Info("websocket connection established", "session", conn.ID(), "remote", raw.RemoteAddr().String())
	default:
		log.Warn("accept backlog full, dropping connection", "remote", raw.RemoteAddr().String())
		_ = conn.Close()
	}
}

// Accept - hands over at most one pending connection, without blocking.
func (that *Server) Accept() (session.Conn, bool) {
	select {
	case conn := <-that.accepted:
		return conn, true
	default:
		return nil, false
	}
}
