// Command ircline is a minimal CLI driver exercising the ircwire
// library end to end: dial, register, stream incoming lines, and
// optionally send one message. It implements no bot logic of its own —
// nickname negotiation beyond the initial registration burst, channel
// tracking, and CTCP are all explicitly out of scope (spec.md §1).
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/delix/ircwire"
	"github.com/delix/ircwire/internal/config"
)

var (
	configPath string
	useTLS     bool
	addr       string
	nickname   string
	username   string
	realname   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ircline",
		Short: "A minimal driver for the ircwire connection library",
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a TOML connection profile (overrides other flags)")
	flags.StringVar(&addr, "addr", "", "server address, host:port")
	flags.BoolVar(&useTLS, "tls", false, "connect over TLS")
	flags.StringVar(&nickname, "nick", "", "nickname to register as")
	flags.StringVar(&username, "user", "ircline", "username to register as")
	flags.StringVar(&realname, "realname", "ircline", "realname to register as")

	root.AddCommand(newRunCmd())
	root.AddCommand(newSendCmd())

	return root
}

func resolveConfig(flags *pflag.FlagSet) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	if addr == "" || nickname == "" {
		return nil, fmt.Errorf("either --config or both --addr and --nick are required")
	}
	return &config.Config{
		Server: config.ServerConfig{Addr: addr, TLS: useTLS},
		Client: config.ClientConfig{Nickname: nickname, Username: username, Realname: realname},
	}, nil
}

func connectAndRegister(ctx context.Context, cfg *config.Config) (*ircwire.Transport, error) {
	connector := &ircwire.Connector{Log: logrus.NewEntry(logrus.StandardLogger())}

	var t *ircwire.Transport
	var err error
	if cfg.Server.TLS {
		serverName := cfg.Server.ServerName
		if serverName == "" {
			if host, _, splitErr := net.SplitHostPort(cfg.Server.Addr); splitErr == nil {
				serverName = host
			}
		}
		t, err = connector.DialTLS(ctx, cfg.Server.Addr, &tls.Config{ServerName: serverName})
	} else {
		t, err = connector.Dial(ctx, cfg.Server.Addr)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Client.Password != "" {
		if err := writeAndQueue(t, func() (*ircwire.Message, error) { return ircwire.SendPass(cfg.Client.Password) }); err != nil {
			return nil, err
		}
	}
	if err := writeAndQueue(t, func() (*ircwire.Message, error) { return ircwire.SendNick(cfg.Client.Nickname) }); err != nil {
		return nil, err
	}
	if err := writeAndQueue(t, func() (*ircwire.Message, error) {
		return ircwire.SendUser(cfg.Client.Username, cfg.Client.Realname)
	}); err != nil {
		return nil, err
	}
	if err := t.Flush(ctx); err != nil {
		return nil, err
	}

	return t, nil
}

func writeAndQueue(t *ircwire.Transport, build func() (*ircwire.Message, error)) error {
	m, err := build()
	if err != nil {
		return err
	}
	return t.WriteMessage(m)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect, register, and print every message received until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cfg, err := resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}

			t, err := connectAndRegister(ctx, cfg)
			if err != nil {
				return err
			}
			defer t.Close()

			for {
				m, err := t.ReadMessage(ctx)
				if err != nil {
					return err
				}
				fmt.Println(m.RawMessage())
			}
		},
	}
}

func newSendCmd() *cobra.Command {
	var target, text string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Connect, register, send one PRIVMSG, and quit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}

			t, err := connectAndRegister(ctx, cfg)
			if err != nil {
				return err
			}
			defer t.Close()

			msg, err := ircwire.SendMsg(target, text)
			if err != nil {
				return err
			}
			if err := t.WriteMessage(msg); err != nil {
				return err
			}
			quit, err := ircwire.SendQuit()
			if err != nil {
				return err
			}
			if err := t.WriteMessage(quit); err != nil {
				return err
			}
			return t.Flush(ctx)
		},
	}

	cmd.Flags().StringVar(&target, "to", "", "channel or nickname to message")
	cmd.Flags().StringVar(&text, "text", "", "message text")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("text")

	return cmd
}
