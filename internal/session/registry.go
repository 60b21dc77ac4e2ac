// Package session tracks the set of live connections, independent of
// player identity. Membership is unordered; a slot is reclaimed within
// one tick of its connection going stale.
package session

import (
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/metrics"
)

// Conn is one peer session as seen by the registry and the arena loop.
// Receive must be non-blocking: it returns the next pending payload, or
// ok=false once the session is drained for this tick.
type Conn interface {
	ID() string
	Receive() ([]byte, bool)
	Send(payload []byte) error
	IsLive() bool
	Close() error
}

// Registry is owned by the arena loop; it is not safe for concurrent use.
type Registry struct {
	logger *slog.Logger
	conns  []Conn
	max    int
}

func NewRegistry(logger *slog.Logger, max int) *Registry {
	return &Registry{
		logger: logger.With("component", "session_registry"),
		max:    max,
	}
}

// Prune - removes every entry that is no longer live. Order is
// irrelevant, so removal swaps with the last entry and shrinks.
func (that *Registry) Prune() {
	for i := 0; i < len(that.conns); {
		if that.conns[i].IsLive() {
			i++
			continue
		}

		stale := that.conns[i]
		that.conns[i] = that.conns[len(that.conns)-1]
		that.conns = that.conns[:len(that.conns)-1]

		if err := stale.Close(); err != nil {
			that.logger.Debug("failed to close stale session", "session", stale.ID(), "error", err)
		}

		that.logger.Info("session reclaimed", "session", stale.ID())
	}

	metrics.ActiveSessions.Set(float64(len(that.conns)))
}

// Admit - appends a newly accepted connection, refusing once the
// configured ceiling is reached.
func (that *Registry) Admit(conn Conn) error {
	if len(that.conns) >= that.max {
		metrics.SessionsRefused.Inc()
		return apperror.ErrSessionLimit
	}

	that.conns = append(that.conns, conn)

	metrics.SessionsAdmitted.Inc()
	metrics.ActiveSessions.Set(float64(len(that.conns)))

	that.logger.Info("session admitted", "session", conn.ID(), "sessions", len(that.conns))

	return nil
}

// Broadcast - sends the payload to every live entry. A failed send to
// one peer never blocks or fails sends to the others, and is not retried.
func (that *Registry) Broadcast(payload []byte) {
	for _, conn := range that.conns {
		if !conn.IsLive() {
			continue
		}

		if err := conn.Send(payload); err != nil {
			that.logger.Debug("failed to send to session", "session", conn.ID(), "error", err)
		}
	}

	metrics.BroadcastsTotal.Inc()
}

// Conns - the current entries, for per-session iteration by the loop.
func (that *Registry) Conns() []Conn {
	return that.conns
}

func (that *Registry) Len() int {
	return len(that.conns)
}
