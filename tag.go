package ircwire

import "time"

// Tag is the capability a type must implement to participate in typed
// tag dispatch via TagAs, mirroring spec.md §4.3's tag view: "declares
// its name and a parser from an optional value string". Value-less
// tags (`key` alone) and empty-valued tags (`key=`) are distinct cases,
// both passed through to parseValue so implementations can tell them
// apart.
type Tag interface {
	// TagName returns the tag key this type matches, compared
	// case-sensitively against each key yielded by Message.RawTags().
	TagName() string

	// parseValue receives the tag's value (if any) and whether a value
	// was present at all, and reports whether it was well-formed.
	parseValue(value string, hasValue bool) bool
}

type tagPtr[T any] interface {
	*T
	Tag
}

// TagAs attempts to view one of m's tags as a T, scanning for the
// first tag whose key equals T's TagName(). Go methods cannot
// themselves carry type parameters, so this free function stands in
// for the `Message.tag<T>()` method described in spec.md §4.2.
func TagAs[T any, PT tagPtr[T]](m *Message) (T, bool) {
	var zero T
	ptr := PT(&zero)
	name := ptr.TagName()

	it := m.RawTags()
	for {
		key, value, hasValue, ok := it.Next()
		if !ok {
			return zero, false
		}
		if key != name {
			continue
		}
		if !ptr.parseValue(value, hasValue) {
			return zero, false
		}
		return zero, true
	}
}

// ServerTime is the IRCv3 "time" tag: a millisecond-precision UTC
// timestamp a server attaches to replayed or relayed messages.
type ServerTime struct {
	At time.Time
}

func (*ServerTime) TagName() string { return "time" }

func (s *ServerTime) parseValue(value string, hasValue bool) bool {
	if !hasValue {
		return false
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return false
	}
	s.At = t
	return true
}

// AccountTag is the IRCv3 "account" tag: the services account name
// responsible for a message, present on messages from logged-in users.
type AccountTag struct {
	Account string
}

func (*AccountTag) TagName() string { return "account" }

func (a *AccountTag) parseValue(value string, hasValue bool) bool {
	if !hasValue {
		return false
	}
	a.Account = value
	return true
}

// MsgID is the IRCv3 "msgid" tag: an opaque per-message identifier
// used for reply threading and deduplication.
type MsgID struct {
	ID string
}

func (*MsgID) TagName() string { return "msgid" }

func (m *MsgID) parseValue(value string, hasValue bool) bool {
	if !hasValue {
		return false
	}
	m.ID = value
	return true
}
