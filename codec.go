package ircwire

import "bytes"

// Decoder turns a growable byte buffer into a sequence of Messages,
// one complete line at a time. It is deliberately split from Encoder
// (rather than combined into one bidirectional codec type) so each
// half can be constructed and tested independently, grounded in
// original_source/src/codec.rs's IrcCodec, which likewise exposes
// decode and encode as unrelated operations over the same wire format.
type Decoder struct {
	buf []byte
}

// NewDecoder returns an empty Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Fill appends newly read bytes to the decoder's internal buffer. The
// caller owns p after Fill returns; the decoder copies what it needs.
func (d *Decoder) Fill(p []byte) {
	d.buf = append(d.buf, p...)
}

// Decode attempts to extract one complete line from the buffer.
//
// A nil Message with a nil error means no complete line is buffered
// yet ("need more bytes"); the caller should read more and Fill again.
// A non-nil error means a complete line was found but failed to parse
// or violated a length cap; the malformed line is still consumed from
// the buffer, so the next Decode call can make progress on whatever
// follows it. Decode never returns a partially-consumed line: after
// any return carrying a non-nil Message or error, the buffer's
// remaining bytes are exactly the tail following the delimiter.
func (d *Decoder) Decode() (*Message, error) {
	idx := bytes.IndexByte(d.buf, '\n')
	if idx < 0 {
		return nil, nil
	}

	lineEnd := idx
	if lineEnd > 0 && d.buf[lineEnd-1] == '\r' {
		lineEnd--
	}
	line := string(d.buf[:lineEnd])

	tail := make([]byte, len(d.buf)-(idx+1))
	copy(tail, d.buf[idx+1:])
	d.buf = tail

	m, err := Parse(line)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Encoder writes Messages to the wire format: the raw line followed by
// a CRLF terminator.
type Encoder struct{}

// NewEncoder returns an Encoder. It carries no state of its own; its
// existence as a type (rather than a bare function) mirrors Decoder and
// leaves room for future framing variants without changing callers.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode appends message's wire form, CRLF-terminated, to buf. The
// caller is responsible for flushing buf to the underlying stream.
func (e *Encoder) Encode(buf *bytes.Buffer, message *Message) error {
	buf.WriteString(message.RawMessage())
	buf.WriteString("\r\n")
	return nil
}
