// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/actionpack/actionpack/lib/clitool"
	"github.com/actionpack/actionpack/lib/packsign"
	"github.com/actionpack/actionpack/lib/receiverdir"
	"github.com/actionpack/actionpack/lib/sshpair"
)

func pairCommand() *clitool.Command {
	var (
		keyID string
		ssh   string
	)
	return &clitool.Command{
		Name:    "pair",
		Summary: "Generate a key, register a receiver, and print its enablement command",
		Usage:   "actionpack pair <name> <addr> [--id <key_id>] [--ssh <host>]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("pair", pflag.ContinueOnError)
			fs.StringVar(&keyID, "id", defaultKeyID, "signing key_id to trust")
			fs.StringVar(&ssh, "ssh", "", "run the enablement command remotely over SSH")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("pair: requires <name> <addr>")
			}
			name, addr := args[0], args[1]

			stateDir, err := defaultStateDir()
			if err != nil {
				return err
			}
			store, err := packsign.Open(keystoreDir(stateDir))
			if err != nil {
				return err
			}
			pub, err := store.Generate(keyID)
			if err != nil {
				return fmt.Errorf("keygen failed: %w", err)
			}

			if err := receiverdir.Upsert(receiverDirPath(stateDir), name, addr); err != nil {
				return err
			}

			command := fmt.Sprintf("actionpack receiver enable --listen %s --trust %s %s", addr, keyID, pub)

			if ssh == "" {
				fmt.Println(command)
				return nil
			}

			fmt.Fprintf(os.Stderr, "running on %s: %s\n", ssh, command)
			return sshpair.Run(ssh, command, os.Stdout, os.Stderr)
		},
	}
}
