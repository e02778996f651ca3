// Package config loads the connection parameters a real caller needs
// but that spec.md deliberately leaves outside the library's core
// (the core takes a pre-resolved endpoint): server address, TLS mode,
// and registration identity. Grounded in aarondl-ultimateq's and
// lrstanley-girc's use of github.com/BurntSushi/toml for IRC bot
// configuration.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk shape of a connection profile.
type Config struct {
	Server ServerConfig `toml:"server"`
	Client ClientConfig `toml:"client"`
}

// ServerConfig names the endpoint and transport mode.
type ServerConfig struct {
	// Addr is a resolved "host:port" pair, passed straight to
	// Connector.Dial/DialTLS.
	Addr string `toml:"addr"`
	// TLS enables DialTLS instead of Dial.
	TLS bool `toml:"tls"`
	// ServerName overrides the domain name used for certificate
	// verification; defaults to the host portion of Addr when empty.
	ServerName string `toml:"server_name"`
}

// ClientConfig names the registration identity sent via SendPass,
// SendNick, and SendUser.
type ClientConfig struct {
	Nickname string `toml:"nickname"`
	Username string `toml:"username"`
	Realname string `toml:"realname"`
	Password string `toml:"password"`
}

// Load parses a TOML document from path into a Config.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Server.Addr == "" {
		return nil, fmt.Errorf("config: server.addr is required")
	}
	if cfg.Client.Nickname == "" {
		return nil, fmt.Errorf("config: client.nickname is required")
	}
	return &cfg, nil
}
