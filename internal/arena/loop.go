// Package arena drives the authoritative game. A fixed-interval tick
// loop is the single owner of the game state and the session registry:
// transports only feed it through non-blocking accept and receive, so
// at most one move application is ever in flight.
package arena

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-arena/internal/protocol"
	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
)

// Transport hands over newly established connections. Accept must be
// non-blocking and return at most one connection per invocation.
type Transport interface {
	Accept() (session.Conn, bool)
}

type matchRecorder interface {
	Create(ctx context.Context, match *entity.Match) error
}

type Loop struct {
	logger     *slog.Logger
	game       *entity.Game
	registry   *session.Registry
	matches    matchRecorder
	interval   time.Duration
	transports []Transport
}

func New(logger *slog.Logger, game *entity.Game, registry *session.Registry, matches matchRecorder, interval time.Duration, transports ...Transport) *Loop {
	return &Loop{
		logger:     logger.With("component", "arena"),
		game:       game,
		registry:   registry,
		matches:    matches,
		interval:   interval,
		transports: transports,
	}
}

// Run - ticks until the context is cancelled.
func (that *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	that.logger.Info("arena loop started", "interval", that.interval.String())

	for {
		select {
		case <-ctx.Done():
			that.logger.Info("arena loop stopped")
			return nil
		case <-ticker.C:
			that.tick(ctx)
		}
	}
}

// tick - one full server cycle, in fixed order: prune stale sessions,
// admit every pending connection, then drain each live session in full
// before moving to the next.
func (that *Loop) tick(ctx context.Context) {
	that.registry.Prune()
	that.admitPending()
	that.drainSessions(ctx)
}

func (that *Loop) admitPending() {
	for _, transport := range that.transports {
		for {
			conn, ok := transport.Accept()
			if !ok {
				break
			}

			if err := that.registry.Admit(conn); err != nil {
				that.logger.Warn("connection refused", "session", conn.ID(), "error", err)

				if closeErr := conn.Close(); closeErr != nil {
					that.logger.Debug("failed to close refused connection", "error", closeErr)
				}
			}
		}
	}
}

func (that *Loop) drainSessions(ctx context.Context) {
	for _, conn := range that.registry.Conns() {
		if !conn.IsLive() {
			continue
		}

		for {
			payload, ok := conn.Receive()
			if !ok {
				break
			}

			that.handlePayload(ctx, payload)
		}
	}
}

// handlePayload - decodes one inbound payload and routes it into the
// game. Malformed payloads and rejected moves are dropped silently: no
// response, no state change. Rejection is communicated implicitly, the
// next snapshot simply does not reflect the attempted move.
func (that *Loop) handlePayload(ctx context.Context, payload []byte) {
	move, ok := protocol.ParseCommand(payload)
	if !ok {
		metrics.MalformedPayloads.Inc()
		that.logger.Debug("dropped malformed payload", "payload", string(payload))
		return
	}

	// There is deliberately no binding between connection identity and
	// player number: any admitted session may submit a move and it is
	// judged only against the current mover.
	outcome, err := that.game.ApplyMove(move.Player, move.X, move.Y)
	metrics.MovesTotal.WithLabelValues(outcome.String()).Inc()

	switch outcome {
	case entity.OutcomeRejected:
		that.logger.Debug("move rejected", "player", move.Player, "x", move.X, "y", move.Y, "reason", err)
		return
	case entity.OutcomeWon:
		that.logger.Info("game won", "player", move.Player)
		that.registry.Broadcast(protocol.EncodeWin(move.Player))
		that.recordMatch(ctx, move.Player)
	case entity.OutcomeDrawn:
		that.logger.Info("game drawn")
		that.registry.Broadcast(protocol.EncodeDraw())
		that.recordMatch(ctx, entity.CellEmpty)
	case entity.OutcomeContinued:
	}

	that.registry.Broadcast(protocol.EncodeState(that.game))
}

// recordMatch - writes the finished-match record. Recording is history
// only: it is never read back at startup, and a failure does not affect
// the running game.
func (that *Loop) recordMatch(ctx context.Context, winner int) {
	if that.matches == nil {
		return
	}

	match := &entity.Match{
		ID:         pkg.GenerateMatchID(),
		Winner:     winner,
		Board:      protocol.EncodeBoard(that.game),
		FinishedAt: time.Now().UTC(),
	}

	if err := that.matches.Create(ctx, match); err != nil {
		that.logger.Error("failed to record match", "match", match.ID, "error", err)
	}
}
