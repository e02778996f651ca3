/*
Package ircdebug contains helper functions useful while developing
against this module: mainly a wire-level tee of an
io.ReadWriteCloser for logging traffic to a file or os.Stdout.
*/
package ircdebug

import (
	"io"
	"sync"
)

// WriteTo returns a new io.ReadWriteCloser that copies all reads/writes
// for rwc to w, so the Transport built from the returned value behaves
// identically to rwc while every line it sees or sends is also logged.
// Reads and Writes are prefixed with inPrefix and outPrefix
// respectively.
//
// The returned value is safe for the concurrent Read/Write pattern a
// split Transport uses (one goroutine reading, one writing): w is
// serialized with a mutex so a PONG auto-reply logged from the read
// side can never interleave mid-line with a caller's own write.
func WriteTo(w io.Writer, rwc io.ReadWriteCloser, outPrefix string, inPrefix string) io.ReadWriteCloser {
	guard := &mutexWriter{w: w}
	return &debugConn{
		ReadWriteCloser: rwc,
		r:               io.TeeReader(rwc, &writePrefixer{w: guard, prefix: inPrefix}),
		w:               io.MultiWriter(rwc, &writePrefixer{w: guard, prefix: outPrefix}),
	}
}

type debugConn struct {
	io.ReadWriteCloser
	r io.Reader
	w io.Writer
}

func (dc *debugConn) Read(p []byte) (int, error) {
	return dc.r.Read(p)
}
func (dc *debugConn) Write(p []byte) (int, error) {
	return dc.w.Write(p)
}

// mutexWriter serializes access to an underlying writer shared by the
// tee's read and write sides.
type mutexWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (m *mutexWriter) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.w.Write(p)
}

type writePrefixer struct {
	w      io.Writer
	prefix string
}

func (wp *writePrefixer) Write(p []byte) (n int, err error) {
	n, err = wp.w.Write(append([]byte(wp.prefix), p...))

	// On the write side this sits inside a MultiWriter, which requires
	// every writer to report the same byte count or it treats the
	// mismatch as an error; lie about the prefix bytes so the underlying
	// rwc's own count is what's reported back to the caller. On the read
	// side io.TeeReader only looks at the error.
	return n - len(wp.prefix), err
}
