package tcp

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-arena/internal/protocol"
)

const (
	inboundBacklog = 64
	writeTimeout   = 5 * time.Second
)

// Conn is one TCP peer session. The reader goroutine decodes frames
// into a buffered channel; Receive drains it without blocking. Send is
// a best-effort framed write, any failure marks the session dead.
type Conn struct {
	id      string
	raw     net.Conn
	inbound chan []byte
	live    atomic.Bool

	writeMu sync.Mutex
}

func newConn(raw net.Conn) *Conn {
	conn := &Conn{
		id:      pkg.GenerateSessionID(),
		raw:     raw,
		inbound: make(chan []byte, inboundBacklog),
	}
	conn.live.Store(true)

	return conn
}

func (that *Conn) readLoop() {
	defer that.markDead()

	for {
		payload, err := protocol.ReadFrame(that.raw)
		if err != nil {
			return
		}

		select {
		case that.inbound <- payload:
		default:
			// consumer lagging behind the sender, shed the payload
		}
	}
}

func (that *Conn) ID() string {
	return that.id
}

// Receive - the next pending payload, or ok=false once drained.
func (that *Conn) Receive() ([]byte, bool) {
	select {
	case payload := <-that.inbound:
		return payload, true
	default:
		return nil, false
	}
}

func (that *Conn) Send(payload []byte) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.raw.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		that.markDead()
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := protocol.WriteFrame(that.raw, payload); err != nil {
		that.markDead()
		return fmt.Errorf("failed to send frame: %w", err)
	}

	return nil
}

func (that *Conn) IsLive() bool {
	return that.live.Load()
}

func (that *Conn) Close() error {
	if that.live.Swap(false) {
		return that.raw.Close()
	}

	return nil
}

func (that *Conn) markDead() {
	if that.live.Swap(false) {
		_ = that.raw.Close()
	}
}
