package ircwire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNeedsMoreBytes(t *testing.T) {
	dec := NewDecoder()
	dec.Fill([]byte("PRIVMSG #ch :no terminator yet"))
	m, err := dec.Decode()
	assert.Nil(t, m)
	assert.NoError(t, err)
}

func TestDecodeMultipleLinesInOneFill(t *testing.T) {
	dec := NewDecoder()
	dec.Fill([]byte("PING :one\r\nPRIVMSG #ch :two\r\n"))

	m1, err := dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, m1)
	assert.Equal(t, "PING", m1.RawCommand())

	m2, err := dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, m2)
	assert.Equal(t, "PRIVMSG", m2.RawCommand())

	m3, err := dec.Decode()
	assert.Nil(t, m3)
	assert.NoError(t, err)
}

func TestDecodeBareLineFeedNoCarriageReturn(t *testing.T) {
	dec := NewDecoder()
	dec.Fill([]byte("PING :bare\nPRIVMSG #ch :next\r\n"))

	m1, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "PING", m1.RawCommand())
	assert.Equal(t, "bare", m1.Arg(1))

	m2, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG", m2.RawCommand())
}

func TestDecodeTerminatorAcrossFillBoundary(t *testing.T) {
	dec := NewDecoder()
	dec.Fill([]byte("PING :split\r"))
	m, err := dec.Decode()
	assert.Nil(t, m)
	assert.NoError(t, err)

	dec.Fill([]byte("\n"))
	m, err = dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "PING", m.RawCommand())
}

func TestDecodeMalformedLineIsConsumed(t *testing.T) {
	dec := NewDecoder()
	dec.Fill([]byte("@k= \r\nPING :ok\r\n"))

	_, err := dec.Decode()
	require.Error(t, err)

	m, err := dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "PING", m.RawCommand())
}

func TestEncode(t *testing.T) {
	enc := NewEncoder()
	m, err := SendMsg("#ch", "hi")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, m))
	assert.Equal(t, "PRIVMSG #ch :hi\r\n", buf.String())
}

func TestCodecFramingProperty(t *testing.T) {
	lines := []string{
		"PING :server",
		"PRIVMSG #x :hi",
		":nick!user@host NOTICE #x :bye",
	}

	var wire bytes.Buffer
	enc := NewEncoder()
	for _, l := range lines {
		m, err := Parse(l)
		require.NoError(t, err)
		require.NoError(t, enc.Encode(&wire, m))
	}

	dec := NewDecoder()
	var got []string
	raw := wire.Bytes()
	for _, b := range raw {
		dec.Fill([]byte{b})
		for {
			m, err := dec.Decode()
			require.NoError(t, err)
			if m == nil {
				break
			}
			got = append(got, m.RawMessage())
		}
	}
	assert.Equal(t, lines, got)
}
