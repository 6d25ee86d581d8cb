// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Command actionpack-receiverd is the network-facing receiver daemon:
// it loads the keystore, policy, and sandbox root named by its
// configuration file, opens the replay cache (action_pack_seen, in the
// configuration file's directory), then accepts one signed pack per
// connection and reports a line-oriented transcript of what happened.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/actionpack/actionpack/lib/keystore"
	"github.com/actionpack/actionpack/lib/packexec"
	"github.com/actionpack/actionpack/lib/peeradmit"
	"github.com/actionpack/actionpack/lib/policy"
	"github.com/actionpack/actionpack/lib/process"
	"github.com/actionpack/actionpack/lib/receiverconf"
	"github.com/actionpack/actionpack/lib/replay"
	"github.com/actionpack/actionpack/lib/sandboxfs"
	"github.com/actionpack/actionpack/lib/server"
	"github.com/actionpack/actionpack/lib/trace"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to action_pack_receiver.conf (default: $HOME/.action-pack/action_pack_receiver.conf)")
	flag.Parse()

	if configPath == "" {
		stateDir, err := receiverconf.DefaultStateDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(stateDir, "action_pack_receiver.conf")
	}

	cfg, err := receiverconf.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Listen == "" {
		return fmt.Errorf("actionpack-receiverd: %s: listen is required", configPath)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ks, err := keystore.Load(cfg.Pubkeys)
	if err != nil {
		return err
	}

	policies := policy.Default()
	if cfg.Policy != "" {
		policies, err = policy.Load(cfg.Policy)
		if err != nil {
			return err
		}
	}

	replayPath := filepath.Join(filepath.Dir(configPath), "action_pack_seen")
	replayCache, err := replay.Open(replayPath, time.Now().UnixMilli())
	if err != nil {
		return err
	}
	defer replayCache.Close()

	var writer *sandboxfs.Writer
	if cfg.Root != "" {
		writer, err = sandboxfs.New(cfg.Root)
		if err != nil {
			return err
		}
	}

	home := os.Getenv("HOME")

	executor := &packexec.Executor{
		Keystore:       ks,
		Policies:       policies,
		Replay:         replayCache,
		Writer:         writer,
		Home:           home,
		Sink:           trace.NewSlogSink(logger),
		MaxOutputBytes: cfg.MaxOutput,
	}

	srv := server.New(server.Config{
		Listen:      cfg.Listen,
		MaxConns:    cfg.MaxConns,
		IOTimeout:   time.Duration(cfg.IOTimeoutMs) * time.Millisecond,
		MaxRequest:  cfg.MaxRequest,
		AdmitFilter: peeradmit.Filter{AllowLocal: cfg.AllowLocal, AllowTailscale: cfg.AllowTailscale},
	}, executor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("action pack receiver starting", "listen", cfg.Listen, "root", cfg.Root)
	return srv.Serve(ctx)
}
