package ircwire

import "unicode/utf8"

// Length caps from spec.md §4.1 and the classical IRC line limit: 512
// bytes for everything but the tags section, and a further 512 bytes
// for the tags section itself (leading '@' through the trailing SPACE).
const (
	maxLineLength       = 512
	maxTagSectionLength = 512
)

// parser walks a raw line once, left to right, recording byte ranges
// into the Message under construction. It never allocates a string; it
// only ever re-slices the input it was given.
//
// This follows the same state-function shape as a classic Rob Pike
// lexer (one method per grammar production, each returning once it has
// either consumed its production or hit an error) but records its
// output directly into shared fields instead of emitting tokens over a
// channel to a second goroutine: there is exactly one pass, on the
// caller's own goroutine, and no token value is ever copied.
type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

// consumeDelimiter consumes the single SPACE the caller has already
// confirmed is at the current position, then rejects a second
// consecutive SPACE. spec.md §4.1 leaves the handling of doubled-space
// runs as an implementer's choice and recommends rejecting them; this
// is that choice, applied uniformly at every delimiter in the grammar.
func (p *parser) consumeDelimiter() error {
	p.pos++ // the SPACE itself
	if p.peek() == ' ' {
		return errUnexpectedEndOfInput("doubled space run after a delimiter")
	}
	return nil
}

func parseMessage(raw string) (*Message, error) {
	if len(raw) == 0 {
		return nil, errUnexpectedEndOfInput("message is empty")
	}
	if !utf8.ValidString(raw) {
		return nil, errInvalidUTF8()
	}

	p := &parser{input: raw}
	m := &Message{raw: raw}

	tagSectionLength := 0
	if p.peek() == '@' {
		if err := p.scanTags(m); err != nil {
			return nil, err
		}
		tagSectionLength = p.pos
		if tagSectionLength > maxTagSectionLength {
			return nil, errInputTooLong("tags")
		}
	}

	if p.peek() == ':' {
		if err := p.scanPrefix(m); err != nil {
			return nil, err
		}
	}

	if err := p.scanCommand(m); err != nil {
		return nil, err
	}

	if err := p.scanArgs(m); err != nil {
		return nil, err
	}

	if len(raw)-tagSectionLength > maxLineLength {
		return nil, errInputTooLong("line")
	}

	return m, nil
}

// scanTags consumes the leading '@' and the tags that follow, stopping
// after the single SPACE that ends the tags section. Tag values are
// recorded as raw byte ranges with no IRCv3 backslash-escape handling:
// the parser layer is strictly zero-copy, and neither spec.md's grammar
// nor the Rust message/parser.rs this was ported from perform
// unescaping at this layer.
func (p *parser) scanTags(m *Message) error {
	p.pos++ // '@'

	for {
		keyStart := p.pos
		for {
			if p.eof() {
				return errUnexpectedEndOfInput("reading tag key")
			}
			switch p.peek() {
			case '=', ';', ' ':
			default:
				p.pos++
				continue
			}
			break
		}
		key := byteRange{keyStart, p.pos}

		var tag tagRange
		tag.key = key

		switch p.peek() {
		case '=':
			p.pos++ // '='
			valueStart := p.pos
			for {
				if p.eof() {
					return errUnexpectedEndOfInput("reading tag value")
				}
				if p.peek() == ';' || p.peek() == ' ' {
					break
				}
				p.pos++
			}
			tag.value = byteRange{valueStart, p.pos}
			tag.hasValue = true
		default:
			tag.hasValue = false
		}

		if !key.empty() {
			m.tags = append(m.tags, tag)
		}

		switch p.peek() {
		case ';':
			p.pos++
			continue
		case ' ':
			if err := p.consumeDelimiter(); err != nil {
				return err
			}
			return nil
		default:
			// unreachable: the inner loops above only stop at '=', ';', ' ', or eof (handled above)
			return errUnexpectedEndOfInput("reading tags")
		}
	}
}

// scanPrefix consumes the leading ':' and the prefix that follows,
// stopping after the single SPACE that ends the prefix.
func (p *parser) scanPrefix(m *Message) error {
	p.pos++ // ':'

	nickStart := p.pos
	for {
		if p.eof() {
			return errUnexpectedEndOfInput("reading prefix nick/server")
		}
		switch p.peek() {
		case '!', '@', ' ':
		default:
			p.pos++
			continue
		}
		break
	}
	nick := byteRange{nickStart, p.pos}
	if nick.empty() {
		return errUnexpectedEndOfInput("prefix nick/server must not be empty")
	}

	pr := &prefixRange{nick: nick}

	switch p.peek() {
	case '!':
		p.pos++ // '!'
		userStart := p.pos
		for {
			if p.eof() {
				return errUnexpectedEndOfInput("reading prefix user")
			}
			if p.peek() == '@' || p.peek() == ' ' {
				break
			}
			p.pos++
		}
		pr.user = byteRange{userStart, p.pos}
		pr.hasUser = true

		if p.peek() == '@' {
			p.pos++ // '@'
			hostStart := p.pos
			for {
				if p.eof() {
					return errUnexpectedEndOfInput("reading prefix host")
				}
				if p.peek() == ' ' {
					break
				}
				p.pos++
			}
			pr.host = byteRange{hostStart, p.pos}
			pr.hasHost = true
		}
	case '@':
		p.pos++ // '@'
		hostStart := p.pos
		for {
			if p.eof() {
				return errUnexpectedEndOfInput("reading prefix host")
			}
			if p.peek() == ' ' {
				break
			}
			p.pos++
		}
		pr.host = byteRange{hostStart, p.pos}
		pr.hasHost = true
	}

	pr.full = byteRange{nickStart, p.pos}

	if err := p.consumeDelimiter(); err != nil {
		return err
	}

	m.prefix = pr
	return nil
}

// scanCommand consumes the mandatory command/numeric token and, if one
// follows, the single SPACE that separates it from the arguments.
func (p *parser) scanCommand(m *Message) error {
	start := p.pos
	for !p.eof() && p.peek() != ' ' {
		p.pos++
	}
	cmd := byteRange{start, p.pos}
	if cmd.empty() {
		return errUnexpectedEndOfInput("command must not be empty")
	}
	m.command = cmd

	if p.eof() {
		return nil
	}
	return p.consumeDelimiter()
}

// scanArgs consumes the remaining space-delimited arguments, ending
// with a single trailing argument if one was introduced by ':'.
func (p *parser) scanArgs(m *Message) error {
	for !p.eof() {
		if p.peek() == ':' {
			p.pos++ // ':'
			m.args = append(m.args, byteRange{p.pos, len(p.input)})
			p.pos = len(p.input)
			return nil
		}

		start := p.pos
		for !p.eof() && p.peek() != ' ' {
			p.pos++
		}
		m.args = append(m.args, byteRange{start, p.pos})

		if p.eof() {
			return nil
		}
		if err := p.consumeDelimiter(); err != nil {
			return err
		}
	}
	return nil
}
