package irctest

import (
	"context"
	"testing"

	"github.com/delix/ircwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerSendIsReadByTransport(t *testing.T) {
	server := NewServer()
	defer server.Close()

	transport := ircwire.NewTransport(server.Conn(), nil)

	readDone := make(chan struct {
		m   *ircwire.Message
		err error
	}, 1)
	go func() {
		m, err := transport.ReadMessage(context.Background())
		readDone <- struct {
			m   *ircwire.Message
			err error
		}{m, err}
	}()

	require.NoError(t, server.Send("PRIVMSG #ch :hello"))

	res := <-readDone
	require.NoError(t, res.err)
	assert.Equal(t, "PRIVMSG", res.m.RawCommand())
	assert.Equal(t, "#ch", res.m.Arg(1))
	assert.Equal(t, "hello", res.m.Arg(2))
}

func TestServerRecvsTransportWrites(t *testing.T) {
	server := NewServer()
	defer server.Close()

	transport := ircwire.NewTransport(server.Conn(), nil)

	m, err := ircwire.SendMsg("#ch", "hi there")
	require.NoError(t, err)
	require.NoError(t, transport.WriteMessage(m))

	flushDone := make(chan error, 1)
	go func() { flushDone <- transport.Flush(context.Background()) }()

	recv, err := server.Recv()
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG", recv.RawCommand())
	assert.Equal(t, "hi there", recv.Arg(2))
	require.NoError(t, <-flushDone)
}

func TestServerSendMessage(t *testing.T) {
	server := NewServer()
	defer server.Close()

	transport := ircwire.NewTransport(server.Conn(), nil)

	readDone := make(chan struct {
		m   *ircwire.Message
		err error
	}, 1)
	go func() {
		m, err := transport.ReadMessage(context.Background())
		readDone <- struct {
			m   *ircwire.Message
			err error
		}{m, err}
	}()

	welcome, err := ircwire.Parse(":irc.example.org 001 nyx :Welcome to the network, nyx")
	require.NoError(t, err)
	require.NoError(t, server.SendMessage(welcome))

	res := <-readDone
	require.NoError(t, res.err)
	w, ok := ircwire.CommandAs[ircwire.Welcome, *ircwire.Welcome](res.m)
	require.True(t, ok)
	assert.Equal(t, "nyx", w.Nick)
}
