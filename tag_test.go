package ircwire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagAsServerTime(t *testing.T) {
	m, err := Parse("@time=2026-03-05T12:00:00.000Z PRIVMSG #ch :hi")
	require.NoError(t, err)

	st, ok := TagAs[ServerTime, *ServerTime](m)
	require.True(t, ok)
	assert.True(t, st.At.Equal(time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)))
}

func TestTagAsAbsentValueFails(t *testing.T) {
	m, err := Parse("@time PRIVMSG #ch :hi")
	require.NoError(t, err)

	_, ok := TagAs[ServerTime, *ServerTime](m)
	assert.False(t, ok)
}

func TestTagAsMissingTag(t *testing.T) {
	m, err := Parse("PRIVMSG #ch :hi")
	require.NoError(t, err)

	_, ok := TagAs[ServerTime, *ServerTime](m)
	assert.False(t, ok)
}

func TestTagAsMsgID(t *testing.T) {
	m, err := Parse("@msgid=abc123 PRIVMSG #ch :hi")
	require.NoError(t, err)

	id, ok := TagAs[MsgID, *MsgID](m)
	require.True(t, ok)
	assert.Equal(t, "abc123", id.ID)
}
