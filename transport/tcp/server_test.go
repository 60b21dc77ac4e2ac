package tcp

import (
	"context"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/protocol"
	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func startTestServer(t *testing.T) *Server {
	t.Helper()

	server, err := New(newTestLogger(), "0")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = server.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server.Start(ctx)

	return server
}

func acceptOne(t *testing.T, server *Server) session.Conn {
	t.Helper()

	var conn session.Conn
	require.Eventually(t, func() bool {
		accepted, ok := server.Accept()
		if ok {
			conn = accepted
		}
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	return conn
}

func TestServer_AcceptAndReceive(t *testing.T) {
	// Given: a running server and a dialed client
	server := startTestServer(t)

	client, err := net.Dial("tcp", server.Addr())
	require.NoError(t, err)
	defer client.Close()

	conn := acceptOne(t, server)
	assert.True(t, conn.IsLive())

	// When: the client sends a framed payload
	require.NoError(t, protocol.WriteFrame(client, []byte("MOVE|1|0|0")))

	// Then: the payload becomes receivable on the server-side session
	var payload []byte
	require.Eventually(t, func() bool {
		received, ok := conn.Receive()
		if ok {
			payload = received
		}
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, "MOVE|1|0|0", string(payload))

	// And: with nothing pending, Receive does not block
	_, ok := conn.Receive()
	assert.False(t, ok)
}

func TestServer_Send(t *testing.T) {
	// Given: an accepted connection
	server := startTestServer(t)

	client, err := net.Dial("tcp", server.Addr())
	require.NoError(t, err)
	defer client.Close()

	conn := acceptOne(t, server)

	// When: the server sends a framed payload
	require.NoError(t, conn.Send([]byte("0,0,0;0,0,0;0,0,0|1|True")))

	// Then: the client reads it back intact
	payload, err := protocol.ReadFrame(client)
	require.NoError(t, err)
	assert.Equal(t, "0,0,0;0,0,0;0,0,0|1|True", string(payload))
}

func TestServer_DisconnectMarksSessionStale(t *testing.T) {
	// Given: an accepted connection
	server := startTestServer(t)

	client, err := net.Dial("tcp", server.Addr())
	require.NoError(t, err)

	conn := acceptOne(t, server)
	require.True(t, conn.IsLive())

	// When: the client disconnects
	require.NoError(t, client.Close())

	// Then: the session is observed as no longer live
	require.Eventually(t, func() bool {
		return !conn.IsLive()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestServer_AcceptWithoutPending(t *testing.T) {
	// Given: a running server with no client
	server := startTestServer(t)

	// When/Then: Accept returns immediately with nothing
	_, ok := server.Accept()
	assert.False(t, ok)
}
