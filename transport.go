package ircwire

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

// livenessWindow is the interval after which an absence of any PING is
// treated as a dead connection. IRC servers PING idle clients every
// few minutes; ten minutes of silence strongly indicates network
// failure or a silent disconnect (spec.md §4.6).
const livenessWindow = 600 * time.Second

// Transport wraps a framed byte stream (any io.ReadWriteCloser, so a
// TCP socket, a TLS connection, or a test double all work identically
// — the same flexibility the teacher's Client.DialFn documents for its
// own conn field) and presents it as a source of incoming Messages and
// a sink for outgoing ones. It auto-answers PING with PONG and enforces
// the liveness window on every read.
//
// Besides the stream and its read/write buffers, the only mutable state
// is lastActivity, matching spec.md §3's "Transport state" description;
// it is an atomic.Int64 (unix nanoseconds) rather than a plain field so
// a split Source/Sink pair never needs a lock purely to read or bump it.
type Transport struct {
	conn io.ReadWriteCloser
	log  *logrus.Entry

	dec     *Decoder
	readBuf []byte

	writeMu  sync.Mutex
	enc      *Encoder
	writeBuf bytes.Buffer

	lastActivity atomic.Int64
}

// NewTransport wraps conn in a Transport. A nil log defaults to
// logrus.StandardLogger().
func NewTransport(conn io.ReadWriteCloser, log *logrus.Entry) *Transport {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	t := &Transport{
		conn:    conn,
		log:     log,
		dec:     NewDecoder(),
		enc:     NewEncoder(),
		readBuf: make([]byte, 4096),
	}
	t.lastActivity.Store(time.Now().UnixNano())
	return t
}

func (t *Transport) livenessExpired() bool {
	last := time.Unix(0, t.lastActivity.Load())
	return time.Since(last) >= livenessWindow
}

// ReadMessage returns the next non-PING Message, transparently eating
// PING lines and answering each with a PONG carrying the same
// parameter (spec.md §4.6). ctx cancels an in-flight read by closing
// the underlying stream; the read's own goroutine then unblocks with
// an error, same as any other I/O failure — cancellation does not
// leave the Transport in a usable state afterward, since the
// underlying stream no longer exists to resume on.
func (t *Transport) ReadMessage(ctx context.Context) (*Message, error) {
	for {
		if t.livenessExpired() {
			_ = t.conn.Close()
			return nil, errConnectionReset()
		}

		m, err := t.dec.Decode()
		if err != nil {
			return nil, err
		}
		if m == nil {
			if err := t.fill(ctx); err != nil {
				return nil, err
			}
			continue
		}

		if !equalFoldASCII(m.RawCommand(), CmdPing) {
			return m, nil
		}

		t.lastActivity.Store(time.Now().UnixNano())
		t.log.WithField("command", "PING").Debug("answering ping")

		if m.NumArgs() > 0 {
			pong, err := SendPong(m.Arg(1))
			if err != nil {
				return nil, err
			}
			if err := t.WriteMessage(pong); err != nil {
				return nil, err
			}
			if err := t.Flush(ctx); err != nil {
				return nil, err
			}
		}
	}
}

// fill blocks for more bytes from the underlying stream and feeds them
// to the decoder. The blocking Read runs on a supervised goroutine (via
// sourcegraph/conc, grounded in btnmasher-dircd's use of the same
// package for goroutine supervision) so a panic inside Read surfaces
// here rather than killing a detached goroutine silently, and so ctx
// cancellation can race the read instead of blocking on it forever.
func (t *Transport) fill(ctx context.Context) error {
	type readResult struct {
		n   int
		err error
	}
	resultCh := make(chan readResult, 1)

	var wg conc.WaitGroup
	wg.Go(func() {
		n, err := t.conn.Read(t.readBuf)
		resultCh <- readResult{n, err}
	})

	select {
	case <-ctx.Done():
		_ = t.conn.Close()
		wg.Wait()
		return wrapIO(ctx.Err())
	case r := <-resultCh:
		wg.Wait()
		if r.err != nil {
			return wrapIO(r.err)
		}
		t.dec.Fill(t.readBuf[:r.n])
		return nil
	}
}

// WriteMessage encodes message into the transport's outgoing buffer
// without writing to the stream. Callers that want to batch several
// messages before a single flush should call WriteMessage repeatedly
// and Flush once.
func (t *Transport) WriteMessage(message *Message) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.enc.Encode(&t.writeBuf, message)
}

// Flush writes the outgoing buffer to the stream and clears it. ctx
// cancels an in-flight flush the same way ReadMessage's fill does: by
// closing the underlying stream.
func (t *Transport) Flush(ctx context.Context) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if t.writeBuf.Len() == 0 {
		return nil
	}
	data := t.writeBuf.Bytes()

	type writeResult struct {
		err error
	}
	resultCh := make(chan writeResult, 1)

	var wg conc.WaitGroup
	wg.Go(func() {
		_, err := t.conn.Write(data)
		resultCh <- writeResult{err}
	})

	select {
	case <-ctx.Done():
		_ = t.conn.Close()
		wg.Wait()
		return wrapIO(ctx.Err())
	case r := <-resultCh:
		wg.Wait()
		t.writeBuf.Reset()
		if r.err != nil {
			return wrapIO(r.err)
		}
		return nil
	}
}

// Close closes the underlying stream.
func (t *Transport) Close() error {
	return t.conn.Close()
}

// Source is the read half of a split Transport.
type Source struct {
	t *Transport
}

// ReadMessage delegates to the shared Transport. PING handling happens
// here (on the read half), which obtains brief write access through the
// Transport's write mutex when it needs to emit a PONG; lastActivity is
// kept in an atomic cell, so reading or bumping it takes no lock.
func (s *Source) ReadMessage(ctx context.Context) (*Message, error) {
	return s.t.ReadMessage(ctx)
}

// Sink is the write half of a split Transport.
type Sink struct {
	t *Transport
}

// WriteMessage delegates to the shared Transport.
func (s *Sink) WriteMessage(message *Message) error {
	return s.t.WriteMessage(message)
}

// Flush delegates to the shared Transport.
func (s *Sink) Flush(ctx context.Context) error {
	return s.t.Flush(ctx)
}

// Split returns independent read and write halves sharing one
// Transport. The halves may be used concurrently from separate
// goroutines: Source only ever reads the stream and writes PONGs
// (serialized against Sink's writes by the Transport's internal write
// mutex), and Sink only ever writes; lastActivity is written only from
// Source's goroutine.
func (t *Transport) Split() (*Source, *Sink) {
	return &Source{t: t}, &Sink{t: t}
}
