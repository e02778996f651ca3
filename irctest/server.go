// Package irctest provides an in-memory mock IRC server for exercising
// a Connector/Transport against scripted server behavior without a
// real socket.
package irctest

import (
	"bufio"
	"io"
	"net"
	"strings"

	"github.com/delix/ircwire"
)

// Server is a mock remote IRC peer backed by an in-memory net.Pipe: one
// end is handed to the code under test (via Conn), the other is driven
// by the test itself via Send/SendMessage and Recv.
//
// Unlike a pair of unidirectional io.Pipes, net.Pipe is already a full
// duplex connection, so there is no internal goroutine or buffering
// channel to manage — each Read/Write pair simply rendezvous directly.
// Don't forget to Close.
type Server struct {
	client net.Conn
	remote net.Conn
	reader *bufio.Reader
}

// NewServer creates a new mock server.
func NewServer() *Server {
	client, remote := net.Pipe()
	return &Server{
		client: client,
		remote: remote,
		reader: bufio.NewReader(remote),
	}
}

// Conn returns the io.ReadWriteCloser end to hand to the code under
// test, e.g. ircwire.NewTransport(s.Conn(), nil).
func (s *Server) Conn() io.ReadWriteCloser {
	return s.client
}

// Close closes both ends of the pipe.
func (s *Server) Close() error {
	_ = s.client.Close()
	return s.remote.Close()
}

// Send writes a raw line to the client under test, as if sent by the
// server. A missing CRLF terminator is added.
func (s *Server) Send(line string) error {
	if !strings.HasSuffix(line, "\r\n") {
		line += "\r\n"
	}
	_, err := s.remote.Write([]byte(line))
	return err
}

// SendMessage writes message's wire form to the client under test.
func (s *Server) SendMessage(message *ircwire.Message) error {
	return s.Send(message.RawMessage())
}

// Recv blocks until the client under test writes one complete line,
// then parses and returns it. Since net.Pipe is unbuffered, Recv must
// typically run concurrently with whatever triggers the client's write.
func (s *Server) Recv() (*ircwire.Message, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	line = strings.TrimRight(line, "\r\n")
	return ircwire.Parse(line)
}
