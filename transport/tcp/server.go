// Package tcp is the primary transport adapter: a raw TCP listener
// carrying length-prefixed protocol frames. The accept loop and one
// reader goroutine per connection only feed buffered channels; the
// arena loop polls them without ever blocking.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
)

const acceptBacklog = 64

type Server struct {
	logger   *slog.Logger
	listener net.Listener
	accepted chan *Conn
}

// New - binds the listening endpoint. A bind failure is a startup
// fault and must be surfaced by the caller, not ignored.
func New(logger *slog.Logger, port string) (*Server, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("failed to bind game port %s: %w", port, err)
	}

	return &Server{
		logger:   logger.With("component", "tcp_transport"),
		listener: listener,
		accepted: make(chan *Conn, acceptBacklog),
	}, nil
}

// Start - runs the accept loop until the context is cancelled or the
// listener is closed.
func (that *Server) Start(ctx context.Context) {
	go that.acceptLoop(ctx)
}

func (that *Server) acceptLoop(ctx context.Context) {
	for {
		raw, err := that.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}

			that.logger.Error("failed to accept connection", "error", err)
			continue
		}

		conn := newConn(raw)
		go conn.readLoop()

		select {
		case that.accepted <- conn:
			that.logger.Info("connection accepted", "session", conn.ID(), "remote", raw.RemoteAddr().String())
		default:
			// accept backlog full, shed the connection
			that.logger.Warn("accept backlog full, dropping connection", "remote", raw.RemoteAddr().String())
			_ = conn.Close()
		}
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

// Addr - the bound listen address.
func (that *Server) Addr() string {
	return that.listener.Addr().String()
}

func (that *Server) Close() error {
	if err := that.listener.Close(); err != nil {
		return fmt.Errorf("failed to close listener: %w", err)
	}

	return nil
}
