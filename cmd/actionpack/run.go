// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/actionpack/actionpack/lib/clitool"
	"github.com/actionpack/actionpack/lib/dialer"
	"github.com/actionpack/actionpack/lib/packsign"
)

func runCommand() *clitool.Command {
	var (
		to    string
		keyID string
		ttlMs int64
	)
	return &clitool.Command{
		Name:    "run",
		Summary: "Compile, sign, and send a script; print the transcript",
		Usage:   "actionpack run <script> --to <receiver|ip:port> [--id <key_id>] [--ttl-ms <n>]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
			fs.StringVar(&to, "to", "", "receiver name or ip:port")
			fs.StringVar(&keyID, "id", defaultKeyID, "signing key_id")
			fs.Int64Var(&ttlMs, "ttl-ms", defaultTTL.Milliseconds(), "pack lifetime in milliseconds")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("run: requires exactly one script path argument")
			}
			scriptPath := args[0]

			stateDir, err := defaultStateDir()
			if err != nil {
				return err
			}
			addr, err := resolveReceiverAddr(to, receiverDirPath(stateDir))
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

			return sendEnvelope(addr, envelope)
		},
	}
}

// sendEnvelope dials addr, exchanges the envelope for a transcript, and
// prints that transcript verbatim with a trailing newline. A non-OK
// first line is reported as an error so the CLI exits 1.
func sendEnvelope(addr string, envelope []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	transcript, err := dialer.Exchange(ctx, addr, envelope)
	if err != nil {
		return err
	}

	os.Stdout.Write(transcript)
	if len(transcript) == 0 || transcript[len(transcript)-1] != '\n' {
		fmt.Println()
	}

	if !bytes.HasPrefix(transcript, []byte("OK ")) {
		return fmt.Errorf("run: receiver transcript did not start with OK")
	}
	return nil
}
