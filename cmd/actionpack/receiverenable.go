// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/actionpack/actionpack/lib/clitool"
	"github.com/actionpack/actionpack/lib/keystore"
	"github.com/actionpack/actionpack/lib/policy"
	"github.com/actionpack/actionpack/lib/receiverconf"
)

func receiverCommand() *clitool.Command {
	return &clitool.Command{
		Name:    "receiver",
		Summary: "Receiver-side installation commands",
		Subcommands: []*clitool.Command{
			receiverEnableCommand(),
		},
	}
}

func receiverEnableCommand() *clitool.Command {
	var (
		listen string
		trust  string
		root   string
	)
	return &clitool.Command{
		Name:    "enable",
		Summary: "Write the keystore, default policy, and receiver config",
		Usage:   "actionpack receiver enable --listen <ip:port> --trust <key_id> <pubkey_b64> [--root <path>]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("enable", pflag.ContinueOnError)
			fs.StringVar(&listen, "listen", "", "address to listen on")
			fs.StringVar(&trust, "trust", "", "key_id to trust")
			fs.StringVar(&root, "root", "", "sandbox root directory")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("receiver enable: requires exactly one <pubkey_b64> argument")
			}
			if listen == "" || trust == "" {
				return fmt.Errorf("receiver enable: --listen and --trust are required")
			}
			pubkeyB64 := args[0]

			stateDir, err := receiverconf.DefaultStateDir()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(stateDir, 0o755); err != nil {
				return fmt.Errorf("receiver enable: creating %s: %w", stateDir, err)
			}
			if root == "" {
				root = filepath.Join(stateDir, "sandbox")
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return fmt.Errorf("receiver enable: creating sandbox root %s: %w", root, err)
			}

			ks := keystore.New()
			ks.Put(trust, pubkeyB64)
			pubkeysPath := filepath.Join(stateDir, "action_pack_pubkeys")
			if err := ks.Save(pubkeysPath); err != nil {
				return err
			}

			policyPath := filepath.Join(stateDir, "action_pack.policy")
			if err := writeDefaultPolicy(policyPath, trust); err != nil {
				return err
			}

			cfg := receiverconf.Default()
			cfg.Listen = listen
			cfg.Root = root
			cfg.Pubkeys = pubkeysPath
			cfg.Policy = policyPath
			cfg.AllowLocal = true
			confPath := filepath.Join(stateDir, "action_pack_receiver.conf")
			if err := cfg.Save(confPath); err != nil {
				return err
			}

			fmt.Printf("enabled receiver at %s (state dir %s)\n", listen, stateDir)
			return nil
		},
	}
}

// writeDefaultPolicy writes one policy line for trust, using the
// built-in command allowlist and the conservative defaults
// (allow_root_scripts on, allow_exec_writes off) — the same posture
// lib/policy.Default applies when no policy file exists at all, made
// explicit on disk so the operator has something to edit.
func writeDefaultPolicy(path, keyID string) error {
	var tokens []string
	for _, cmd := range policy.DefaultAllowedCmds() {
		tokens = append(tokens, "cmd="+cmd)
	}
	tokens = append(tokens, "allow_root_scripts=true", "allow_exec_writes=false")

	line := keyID + " " + strings.Join(tokens, " ") + "\n"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("receiver enable: creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("receiver enable: writing %s: %w", path, err)
	}
	return nil
}
