// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/actionpack/actionpack/lib/clitool"
	"github.com/actionpack/actionpack/lib/packsign"
)

const defaultKeyID = "default"

func keygenCommand() *clitool.Command {
	var keyID string
	return &clitool.Command{
		Name:    "keygen",
		Summary: "Ensure a signing key exists and print its public key",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			fs.StringVar(&keyID, "id", defaultKeyID, "key_id to generate")
			return fs
		},
		Run: func(args []string) error {
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
			fmt.Println(pub)
			return nil
		},
	}
}

func exportPubCommand() *clitool.Command {
	var keyID string
	return &clitool.Command{
		Name:    "export-pub",
		Summary: "Print the public key for an existing key_id",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("export-pub", pflag.ContinueOnError)
			fs.StringVar(&keyID, "id", defaultKeyID, "key_id to export")
			return fs
		},
		Run: func(args []string) error {
			stateDir, err := defaultStateDir()
			if err != nil {
				return err
			}
			store, err := packsign.Open(keystoreDir(stateDir))
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
	}
}
