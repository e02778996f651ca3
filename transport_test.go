package ircwire

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeEnds returns a Transport wrapping one end of an in-memory
// net.Pipe, plus a bufio-free raw handle to the other end for the test
// to play the remote server.
func pipeEnds() (*Transport, net.Conn) {
	client, remote := net.Pipe()
	return NewTransport(client, nil), remote
}

func TestTransportPingSuppressionAndPongReply(t *testing.T) {
	transport, remote := pipeEnds()
	defer remote.Close()
	ctx := context.Background()

	type readResult struct {
		m   *Message
		err error
	}
	readDone := make(chan readResult, 1)
	go func() {
		m, err := transport.ReadMessage(ctx)
		readDone <- readResult{m, err}
	}()

	writeDone := make(chan error, 1)
	go func() {
		_, err := remote.Write([]byte("PING :server\r\n"))
		writeDone <- err
	}()
	require.NoError(t, <-writeDone)

	// The transport must answer with PONG before the next non-PING
	// message is surfaced; the PING itself never is.
	pongBuf := make([]byte, 64)
	n, err := remote.Read(pongBuf)
	require.NoError(t, err)
	assert.Equal(t, "PONG :server\r\n", string(pongBuf[:n]))

	// Now send the real message the PING was masking.
	go func() {
		_, err := remote.Write([]byte("PRIVMSG #x :hi\r\n"))
		writeDone <- err
	}()
	require.NoError(t, <-writeDone)

	res := <-readDone
	require.NoError(t, res.err)
	require.NotNil(t, res.m)
	assert.Equal(t, "PRIVMSG", res.m.RawCommand())
	assert.Equal(t, "#x", res.m.Arg(1))
	assert.Equal(t, "hi", res.m.Arg(2))
}

func TestTransportLivenessTimeout(t *testing.T) {
	transport, remote := pipeEnds()
	defer remote.Close()

	transport.lastActivity.Store(time.Now().Add(-2 * livenessWindow).UnixNano())

	_, err := transport.ReadMessage(context.Background())
	require.Error(t, err)

	var wireErr *Error
	require.ErrorAs(t, err, &wireErr)
	assert.Equal(t, KindConnectionReset, wireErr.Kind)
}

func TestTransportWriteAndFlush(t *testing.T) {
	transport, remote := pipeEnds()
	defer remote.Close()
	ctx := context.Background()

	m, err := SendMsg("#ch", "hi")
	require.NoError(t, err)
	require.NoError(t, transport.WriteMessage(m))

	flushDone := make(chan error, 1)
	go func() { flushDone <- transport.Flush(ctx) }()

	buf := make([]byte, 64)
	n, err := remote.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG #ch :hi\r\n", string(buf[:n]))
	require.NoError(t, <-flushDone)
}

func TestTransportSplit(t *testing.T) {
	transport, remote := pipeEnds()
	defer remote.Close()
	ctx := context.Background()

	source, sink := transport.Split()

	readDone := make(chan struct {
		m   *Message
		err error
	}, 1)
	go func() {
		m, err := source.ReadMessage(ctx)
		readDone <- struct {
			m   *Message
			err error
		}{m, err}
	}()

	go func() {
		_, _ = remote.Write([]byte("NOTICE #ch :hi\r\n"))
	}()

	res := <-readDone
	require.NoError(t, res.err)
	assert.Equal(t, "NOTICE", res.m.RawCommand())

	m, err := SendMsg("#ch", "reply")
	require.NoError(t, err)
	require.NoError(t, sink.WriteMessage(m))

	flushDone := make(chan error, 1)
	go func() { flushDone <- sink.Flush(ctx) }()

	buf := make([]byte, 64)
	n, err := remote.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG #ch :reply\r\n", string(buf[:n]))
	require.NoError(t, <-flushDone)
}
