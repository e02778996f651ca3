package ircwire

import "strings"

// byteRange is a half-open [start, end) range of byte offsets into a
// Message's raw line. Every accessor on Message returns a sub-slice of
// the raw line located by one or more byteRanges; no field content is
// ever copied out of the raw line.
type byteRange struct {
	start, end int
}

func (r byteRange) slice(s string) string {
	return s[r.start:r.end]
}

func (r byteRange) empty() bool {
	return r.start == r.end
}

// tagRange locates one IRCv3 message tag. value.empty() with hasValue
// true means the tag was written as "key=" (present, empty); hasValue
// false means the tag was written as "key" alone (absent).
type tagRange struct {
	key      byteRange
	value    byteRange
	hasValue bool
}

// prefixRange locates the optional message prefix. nick is always set
// when a prefix is present; user and host are independently optional.
type prefixRange struct {
	full    byteRange
	nick    byteRange
	user    byteRange
	hasUser bool
	host    byteRange
	hasHost bool
}

// Message owns exactly one raw IRC line (CRLF already stripped) and the
// table of byte ranges the parser recorded while walking it. A Message
// is immutable once constructed; every typed or raw accessor returns a
// sub-slice of raw that stays valid for as long as the Message is held.
type Message struct {
	raw     string
	tags    []tagRange // nil when no tag with a non-empty key was present
	prefix  *prefixRange
	command byteRange
	args    []byteRange
}

// Parse decodes one raw IRC line (without its trailing CRLF) into a
// Message. line must already be valid UTF-8 with character boundaries
// respected by every recorded range; Parse validates this itself.
func Parse(line string) (*Message, error) {
	return parseMessage(line)
}

// RawMessage returns the entire line the Message was parsed from, or
// would marshal to for a Message built with a command constructor.
func (m *Message) RawMessage() string {
	return m.raw
}

// RawCommand returns the command or three-digit numeric token.
func (m *Message) RawCommand() string {
	return m.command.slice(m.raw)
}

// RawPrefix returns the full, unparsed prefix token (without the
// leading ':'), or "", false if the message had no prefix.
func (m *Message) RawPrefix() (string, bool) {
	if m.prefix == nil {
		return "", false
	}
	return m.prefix.full.slice(m.raw), true
}

// Nickname is a case-insensitive IRC nickname, kept from the teacher's
// Nickname type.
type Nickname string

// String implements fmt.Stringer.
func (n Nickname) String() string {
	return string(n)
}

// Is determines whether a nickname matches a string by using Unicode
// case folding.
func (n Nickname) Is(other string) bool {
	return strings.EqualFold(n.String(), other)
}

// Prefix is the parsed form of a message's optional prefix, kept from
// the teacher's Prefix type and rewritten to read from byte ranges.
// User and Host are "" when the prefix carried no such component.
type Prefix struct {
	Nick Nickname
	User string
	Host string
}

// IsServer returns true when the message originated from a server (as
// opposed to a user/client): the prefix has no user or host part and its
// name contains a '.', which a nickname cannot. When true, the server
// name is in Nick.
func (p Prefix) IsServer() bool {
	return p.User == "" && p.Host == "" && strings.Contains(string(p.Nick), ".")
}

// Prefix returns the parsed prefix and true, or a zero Prefix and false
// when the message had no prefix at all.
func (m *Message) Prefix() (Prefix, bool) {
	if m.prefix == nil {
		return Prefix{}, false
	}
	p := Prefix{Nick: Nickname(m.prefix.nick.slice(m.raw))}
	if m.prefix.hasUser {
		p.User = m.prefix.user.slice(m.raw)
	}
	if m.prefix.hasHost {
		p.Host = m.prefix.host.slice(m.raw)
	}
	return p, true
}

// ArgumentIter iterates the arguments of a Message in order. A fresh
// iterator always replays the same sequence, so RawArgs is idempotent.
type ArgumentIter struct {
	source string
	ranges []byteRange
	pos    int
}

// Next returns the next argument and true, or "", false once exhausted.
func (it *ArgumentIter) Next() (string, bool) {
	if it.pos >= len(it.ranges) {
		return "", false
	}
	r := it.ranges[it.pos]
	it.pos++
	return r.slice(it.source), true
}

// Len returns the number of arguments remaining.
func (it *ArgumentIter) Len() int {
	return len(it.ranges) - it.pos
}

// RawArgs returns a fresh, restartable iterator over the message's
// arguments, trailing argument included as the final element.
func (m *Message) RawArgs() *ArgumentIter {
	return &ArgumentIter{source: m.raw, ranges: m.args}
}

// Arg returns the nth argument (1-indexed), or "" if n is out of range.
// Unlike ArgumentIter, Arg does not distinguish a missing argument from
// one that was present but empty; callers needing that distinction
// should use RawArgs directly.
func (m *Message) Arg(n int) string {
	if n < 1 || n > len(m.args) {
		return ""
	}
	return m.args[n-1].slice(m.raw)
}

// NumArgs returns the number of arguments the message carries.
func (m *Message) NumArgs() int {
	return len(m.args)
}

// Params is the slice of arguments for a message, kept from the
// teacher's Params type and rewritten as a thin view over the argument
// range table instead of a materialized []string.
//
// Prefer Get over indexing directly: because a parameter's meaning
// depends on its position for whichever command was used, Get does not
// differentiate between a missing and an empty parameter, so callers
// never need to bounds-check before reading an ordinal parameter.
type Params struct {
	source string
	ranges []byteRange
}

// Get returns the nth parameter (1-indexed), or "" if it does not exist.
func (p Params) Get(n int) string {
	if n < 1 || n > len(p.ranges) {
		return ""
	}
	return p.ranges[n-1].slice(p.source)
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.ranges)
}

// Params returns the message's parameters as a Params view.
func (m *Message) Params() Params {
	return Params{source: m.raw, ranges: m.args}
}

// TagIter iterates the IRCv3 tags of a Message in the order they
// appeared on the wire. A fresh iterator always replays the same
// sequence, so RawTags is idempotent.
type TagIter struct {
	source string
	ranges []tagRange
	pos    int
}

// Next returns the next tag's key, its value (if any), whether a value
// was present, and true, or zero values and false once exhausted.
func (it *TagIter) Next() (key string, value string, hasValue bool, ok bool) {
	if it.pos >= len(it.ranges) {
		return "", "", false, false
	}
	r := it.ranges[it.pos]
	it.pos++
	key = r.key.slice(it.source)
	if r.hasValue {
		value = r.value.slice(it.source)
	}
	return key, value, r.hasValue, true
}

// RawTags returns a fresh, restartable iterator over the message's
// IRCv3 tags.
func (m *Message) RawTags() *TagIter {
	return &TagIter{source: m.raw, ranges: m.tags}
}

// Tag looks up a single tag by key (case-sensitive, as IRCv3 requires),
// returning its value, whether a value was present, and whether the key
// was found at all.
func (m *Message) Tag(key string) (value string, hasValue bool, found bool) {
	for _, r := range m.tags {
		if r.key.slice(m.raw) == key {
			if r.hasValue {
				return r.value.slice(m.raw), true, true
			}
			return "", false, true
		}
	}
	return "", false, false
}

// HasTags reports whether the message carried at least one IRCv3 tag. A
// tags section holding only empty keys (such as "@ ") counts as none.
func (m *Message) HasTags() bool {
	return len(m.tags) > 0
}

// Tags is a map-like view over a message's IRCv3 tags, kept from the
// teacher's Tags type and rewritten to read through Message.Tag instead
// of a materialized map.
type Tags struct {
	m *Message
}

// Get returns the tag value for key. A missing key and a present,
// value-less key both return "" — use Has to tell them apart.
func (t Tags) Get(key string) string {
	value, _, _ := t.m.Tag(key)
	return value
}

// Has returns true when key was listed in the message's IRCv3 tags,
// regardless of whether it carried a value.
func (t Tags) Has(key string) bool {
	_, _, found := t.m.Tag(key)
	return found
}

// Tags returns the message's tags as a Tags view.
func (m *Message) Tags() Tags {
	return Tags{m: m}
}

// equalFoldASCII compares command tokens the way the wire does: case
// insensitively, since IRC commands are restricted to ASCII.
func equalFoldASCII(a, b string) bool {
	return strings.EqualFold(a, b)
}
