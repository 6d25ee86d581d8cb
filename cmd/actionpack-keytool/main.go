// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Command actionpack-keytool is a thin key-lifecycle wrapper: generate,
// export-pub, and list, over the same signing keystore actionpack uses.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/actionpack/actionpack/lib/clitool"
	"github.com/actionpack/actionpack/lib/packsign"
)

func stateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("actionpack-keytool: resolving home directory: %w", err)
	}
	return filepath.Join(home, ".action-pack", "keys"), nil
}

func root() *clitool.Command {
	var keyID string
	flagSet := func(name string) func() *pflag.FlagSet {
		return func() *pflag.FlagSet {
			fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
			fs.StringVar(&keyID, "id", "default", "key_id")
			return fs
		}
	}

	return &clitool.Command{
		Name:    "actionpack-keytool",
		Summary: "Manage action pack signing keys",
		Subcommands: []*clitool.Command{
			{
				Name:    "generate",
				Summary: "Ensure a signing key exists and print its public key",
				Flags:   flagSet("generate"),
				Run: func(args []string) error {
					dir, err := stateDir()
					if err != nil {
						return err
					}
					store, err := packsign.Open(dir)
					if err != nil {
						return err
					}
					pub, err := store.Generate(keyID)
					if err != nil {
						return err
					}
					fmt.Println(pub)
					return nil
				},
			},
			{
				Name:    "export-pub",
				Summary: "Print the public key for an existing key_id",
				Flags:   flagSet("export-pub"),
				Run: func(args []string) error {
					dir, err := stateDir()
					if err != nil {
						return err
					}
					store, err := packsign.Open(dir)
					if err != nil {
						return err
					}
					pub, err := store.ExportPublic(keyID)
					if err != nil {
						return err
					}
					fmt.Println(pub)
					return nil
				},
			},
			{
				Name:    "list",
				Summary: "List every key_id in the local store",
				Run: func(args []string) error {
					dir, err := stateDir()
					if err != nil {
						return err
					}
					store, err := packsign.Open(dir)
					if err != nil {
						return err
					}
					ids, err := store.List()
					if err != nil {
						return err
					}
					for _, id := range ids {
						fmt.Println(id)
					}
					return nil
				},
			},
		},
	}
}

func main() {
	if err := root().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
