// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/actionpack/actionpack/lib/clitool"
	"github.com/actionpack/actionpack/lib/packsign"
	"github.com/actionpack/actionpack/lib/scriptpreview"
)

func packCommand() *clitool.Command {
	var (
		out    string
		keyID  string
		ttlMs  int64
		dryRun bool
	)
	return &clitool.Command{
		Name:    "pack",
		Summary: "Compile and sign a script into a pack envelope file",
		Usage:   "actionpack pack <script> --out <file> [--id <key_id>] [--ttl-ms <n>] [--dry-run]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("pack", pflag.ContinueOnError)
			fs.StringVar(&out, "out", "", "output envelope file path")
			fs.StringVar(&keyID, "id", defaultKeyID, "signing key_id")
			fs.Int64Var(&ttlMs, "ttl-ms", defaultTTL.Milliseconds(), "pack lifetime in milliseconds")
			fs.BoolVar(&dryRun, "dry-run", false, "render the script and exit without signing")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("pack: requires exactly one script path argument")
			}
			scriptPath := args[0]

			if dryRun {
				source, err := readScriptSource(scriptPath)
				if err != nil {
					return err
				}
				rendered, err := scriptpreview.Render(source)
				if err != nil {
					return err
				}
				fmt.Print(rendered)
				return nil
			}

			if out == "" {
				return fmt.Errorf("pack: --out is required")
			}

			stateDir, err := defaultStateDir()
			if err != nil {
				return err
			}
			store, err := packsign.Open(keystoreDir(stateDir))
			if err != nil {
				return err
			}

			envelope, err := buildEnvelope(store, scriptPath, keyID, time.Duration(ttlMs)*time.Millisecond)
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, envelope, 0644); err != nil {
				return fmt.Errorf("pack: writing %s: %w", out, err)
			}
			return nil
		},
	}
}
