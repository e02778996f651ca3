/*
Package ircwire provides a low-level, zero-copy IRC message parser and
a transport state machine built on top of it, implementing the classic
RFC 1459 / RFC 2812 message grammar augmented with the IRCv3
message-tags extension.

API

These are the main types you will interact with:

	// Message owns exactly one raw IRC line and a table of byte ranges
	// into it. Every accessor returns a subslice of the raw line; no
	// field content is ever copied out.
	type Message struct {
		// ...
	}

	// Parse decodes one raw line (CRLF already stripped) into a Message.
	func Parse(line string) (*Message, error)

	// Transport wraps a framed byte stream, auto-answering server PING
	// with PONG and enforcing a ten-minute liveness timeout.
	type Transport struct {
		// ...
	}

	// Connector resolves an address into a Transport, in plain or TLS mode.
	type Connector struct {
		// ...
	}

Scope

This package is the message and transport layer only: it does not
track channels, users, modes, or server capabilities, and it does not
implement nickname negotiation, CTCP, SASL, flood protection, or
automatic reconnection. Callers needing those build them on top of the
Message and Transport primitives here.

Typed dispatch

Command and tag values are exposed generically: CommandAs[T, *T] views
a Message as a known command type (Ping, Pong, Privmsg, ...) and
TagAs[T, *T] views one of its tags the same way. Both return (zero, false)
when the Message or tag doesn't match T's wire name.

Encoding and decoding

Decoder and Encoder turn a growable byte buffer into a stream of
Messages and back; Transport is built on top of one of each.
*/
package ircwire
