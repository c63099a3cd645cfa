// Command ndndclient is a thin CLI over the client core: enough to
// register a prefix and serve or fetch under it from a shell, grounded
// in the teacher's tools/pingclient.go and fw/cmd/cmd.go conventions
// (cobra commands, a signal-driven run loop, fatal-on-misuse logging).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/named-data/ndnd-client-core/config"
	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/engine"
	"github.com/named-data/ndnd-client-core/std/engine/client"
	"github.com/named-data/ndnd-client-core/std/log"
	"github.com/named-data/ndnd-client-core/std/ndn"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
	"github.com/named-data/ndnd-client-core/std/security/signer"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "ndndclient",
		Short: "Named Data Networking client core CLI",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to client.yaml (defaults to unix:///run/nfd.sock)")
	root.AddCommand(cmdGet(), cmdServe())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseName splits a slash-separated URI like "/a/b/c" into components.
// Not part of the core encoding package: it is a CLI-only convenience,
// not a wire-format concern.
func parseName(uri string) enc.Name {
	parts := strings.Split(strings.Trim(uri, "/"), "/")
	return enc.NameFromStrings(parts...)
}

func loadNode() (*client.Node, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log.SetDefault(log.New(cfg.Level()))
	return engine.NewNode(cfg)
}

func runUntilSignal(n *client.Node) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- n.Run() }()

	select {
	case sig := <-sigCh:
		log.Info(n, "received signal - shutting down", "signal", sig)
		_ = n.Shutdown(true)
	case err := <-errCh:
		if err != nil {
			log.Fatal(n, "event loop exited", "err", err)
		}
	}
}

// cmdGet expresses a single Interest and prints the resulting Data's
// content, or reports a timeout.
func cmdGet() *cobra.Command {
	var timeoutMs int

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Express a single Interest and print the Data content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := loadNode()
			if err != nil {
				return err
			}

			go func() { _ = n.Run() }()
			for !n.IsRunning() {
				time.Sleep(time.Millisecond)
			}
			defer n.Shutdown(true)

			done := make(chan struct{})
			interest := &legacy.Interest{Name: parseName(args[0]), LifetimeMs: int64(timeoutMs)}

			n.Post(func() {
				_, err := n.ExpressInterest(interest,
					func(_ *legacy.Interest, data *legacy.Data) {
						fmt.Printf("%s\n", data.Content)
						close(done)
					},
					func(_ *legacy.Interest) {
						fmt.Fprintf(os.Stderr, "timeout: %s\n", interest.Name)
						close(done)
					},
				)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to express interest: %v\n", err)
					close(done)
				}
			})

			<-done
			return nil
		},
	}
	cmd.Flags().IntVarP(&timeoutMs, "timeout", "t", 4000, "Interest lifetime, in milliseconds")
	return cmd
}

// cmdServe registers a prefix and echoes every Interest's name back as
// the Data content, until interrupted.
func cmdServe() *cobra.Command {
	var sign string

	cmd := &cobra.Command{
		Use:   "serve PREFIX",
		Short: "Register a prefix and echo incoming Interest names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := loadNode()
			if err != nil {
				return err
			}

			prefix := parseName(args[0])

			replySigner, err := makeReplySigner(sign, prefix)
			if err != nil {
				return err
			}

			go func() { _ = n.Run() }()
			for !n.IsRunning() {
				time.Sleep(time.Millisecond)
			}

			registered := make(chan error, 1)
			n.Post(func() {
				_, err := n.RegisterPrefix(prefix,
					func(_ enc.Name, interest *legacy.Interest, transport ndn.Transport, _ uint64) {
						data := &legacy.Data{Name: interest.Name, Content: []byte(interest.Name.String())}
						if replySigner != nil {
							if err := legacy.SignData(data, replySigner); err != nil {
								log.Warn(n, "failed to sign reply data", "err", err)
							}
						}
						if err := transport.Send(legacy.EncodeData(data).Join()); err != nil {
							log.Warn(n, "failed to send reply data", "err", err)
						}
					},
					func(failedPrefix enc.Name) {
						log.Error(n, "prefix registration failed", "prefix", failedPrefix)
					},
					0,
				)
				registered <- err
			})
			if err := <-registered; err != nil {
				return err
			}

			log.Info(n, "serving", "prefix", prefix)
			runUntilSignal(n)
			return nil
		},
	}
	cmd.Flags().StringVar(&sign, "sign", "none", "sign replies: none, ed25519, sha256, or hmac:KEY")
	return cmd
}

// makeReplySigner builds the Signer named by the --sign flag: "none" (no
// signing, the default), "ed25519" (a freshly generated key under
// prefix/KEY), "sha256" (unkeyed digest), or "hmac:KEY" (shared-secret
// HMAC using KEY as the key bytes).
func makeReplySigner(mode string, prefix enc.Name) (ndn.Signer, error) {
	switch {
	case mode == "" || mode == "none":
		return nil, nil
	case mode == "ed25519":
		keyName := prefix.Append(enc.NewGenericComponent("KEY"))
		base, err := signer.KeygenEd25519(keyName)
		if err != nil {
			return nil, err
		}
		// KeyLocator names the (self-signed, never published) certificate
		// rather than the raw key, the conventional NDN distinction between
		// KeyName and KeyLocator.
		return &signer.ContextSigner{Signer: base, KeyLocatorName: keyName.Append(enc.NewGenericComponent("self"))}, nil
	case mode == "sha256":
		return signer.NewSha256Signer(), nil
	case strings.HasPrefix(mode, "hmac:"):
		key := strings.TrimPrefix(mode, "hmac:")
		if key == "" {
			return nil, fmt.Errorf("--sign=hmac:KEY requires a non-empty key")
		}
		return signer.NewHmacSigner([]byte(key)), nil
	default:
		return nil, fmt.Errorf("unrecognized --sign mode %q", mode)
	}
}
