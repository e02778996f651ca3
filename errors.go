package ircwire

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the flat set of error categories the library
// returns. Callers should switch on Kind (via errors.As into *Error)
// rather than comparing error values directly.
type Kind int

const (
	// KindIO wraps a failure from the underlying socket.
	KindIO Kind = iota
	// KindUTF8 indicates a raw line was not valid UTF-8.
	KindUTF8
	// KindParse indicates a raw line violated the message grammar or a length cap.
	KindParse
	// KindTLS wraps a failure from the TLS layer: construction, handshake, or mid-stream.
	KindTLS
	// KindConnectionReset is produced by Transport when its liveness window elapses.
	KindConnectionReset
	// KindUnexpected is reserved for the connector's degraded terminal state.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindUTF8:
		return "utf8"
	case KindParse:
		return "parse"
	case KindTLS:
		return "tls"
	case KindConnectionReset:
		return "connection reset"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// ParseSubKind narrows KindParse into the sub-cases named in spec.md §7:
// unexpected end of input, or input too long. Invalid UTF-8 is its own
// top-level Kind (KindUTF8), not a ParseError sub-case.
type ParseSubKind int

const (
	ParseNone ParseSubKind = iota
	ParseUnexpectedEndOfInput
	ParseInputTooLong
)

// Error is the single error type returned by every operation in this
// module. It carries a flat Kind plus, for KindParse, a ParseSubKind and
// the name of whichever length cap was exceeded.
type Error struct {
	Kind Kind

	// ParseSub narrows Kind == KindParse; zero value otherwise.
	ParseSub ParseSubKind

	// Cap names the length cap that was exceeded when ParseSub == ParseInputTooLong:
	// "line" or "tags".
	Cap string

	// Err is the wrapped cause, if any. Wrapped with github.com/pkg/errors
	// so the original call stack survives for Io and Tls causes.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindParse && e.ParseSub == ParseInputTooLong:
		return fmt.Sprintf("irc: parse error: %s section exceeded length limit", e.Cap)
	case e.Kind == KindParse:
		return fmt.Sprintf("irc: parse error: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("irc: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("irc: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Err: errors.Wrap(err, "i/o")}
}

func wrapTLS(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindTLS, Err: errors.Wrap(err, "tls")}
}

func errConnectionReset() error {
	return &Error{Kind: KindConnectionReset, Err: errors.New("liveness window elapsed without a PING")}
}

func errUnexpected(cause error) error {
	return &Error{Kind: KindUnexpected, Err: errors.Wrap(cause, "connector is in a degraded state")}
}

func errUnexpectedEndOfInput(context string) error {
	return &Error{
		Kind:     KindParse,
		ParseSub: ParseUnexpectedEndOfInput,
		Err:      errors.Errorf("unexpected end of input: %s", context),
	}
}

func errInputTooLong(cap string) error {
	return &Error{
		Kind:     KindParse,
		ParseSub: ParseInputTooLong,
		Cap:      cap,
	}
}

func errInvalidUTF8() error {
	return &Error{
		Kind: KindUTF8,
		Err:  errors.New("raw line is not valid utf-8"),
	}
}
