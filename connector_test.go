package ircwire

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectorDialPlain(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	var c Connector
	transport, err := c.Dial(context.Background(), ln.Addr().String())
	require.NoError(t, err)
	defer transport.Close()

	server := <-accepted
	defer server.Close()

	// PING is answered on the receive path, so something must be reading.
	go func() { _, _ = transport.ReadMessage(context.Background()) }()

	_, err = server.Write([]byte("PING :hi\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := server.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "PONG :hi\r\n", string(buf[:n]))
}

func TestConnectorDialContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var c Connector
	_, err := c.Dial(ctx, "127.0.0.1:1")
	require.Error(t, err)

	var wireErr *Error
	require.ErrorAs(t, err, &wireErr)
	require.Equal(t, KindIO, wireErr.Kind)
}

func TestConnectorDialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	var c Connector
	_, err = c.Dial(context.Background(), addr)
	require.Error(t, err)
}

func selfSignedTLSListener(t *testing.T) (net.Listener, *x509.CertPool) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	pool := x509.NewCertPool()
	pool.AddCert(cert)

	tlsCert := tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
	}

	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: []tls.Certificate{tlsCert}})
	require.NoError(t, err)
	return ln, pool
}

func TestConnectorDialTLS(t *testing.T) {
	ln, pool := selfSignedTLSListener(t)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			// tls.Listener does not handshake on Accept; drive it here so
			// DialTLS's handshake can complete.
			_ = conn.(*tls.Conn).Handshake()
			accepted <- conn
		}
	}()

	var c Connector
	transport, err := c.DialTLS(context.Background(), ln.Addr().String(), &tls.Config{
		RootCAs:    pool,
		ServerName: "127.0.0.1",
	})
	require.NoError(t, err)
	defer transport.Close()

	server := <-accepted
	defer server.Close()

	go func() { _, _ = transport.ReadMessage(context.Background()) }()

	_, err = server.Write([]byte("PING :secure\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := server.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "PONG :secure\r\n", string(buf[:n]))
}

func TestConnectorDialTLSUntrustedCert(t *testing.T) {
	ln, _ := selfSignedTLSListener(t)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			defer conn.Close()
			_ = conn.(*tls.Conn).Handshake()
		}
	}()

	var c Connector
	_, err := c.DialTLS(context.Background(), ln.Addr().String(), &tls.Config{ServerName: "127.0.0.1"})
	require.Error(t, err)

	var wireErr *Error
	require.ErrorAs(t, err, &wireErr)
	require.Equal(t, KindTLS, wireErr.Kind)
}
