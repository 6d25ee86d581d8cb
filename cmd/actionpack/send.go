// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/actionpack/actionpack/lib/clitool"
)

func sendCommand() *clitool.Command {
	var to string
	return &clitool.Command{
		Name:    "send",
		Summary: "Send a prebuilt envelope file; print the transcript",
		Usage:   "actionpack send --to <receiver|ip:port> <file>",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("send", pflag.ContinueOnError)
			fs.StringVar(&to, "to", "", "receiver name or ip:port")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("send: requires exactly one envelope file argument")
			}
			if to == "" {
				return fmt.Errorf("send: --to is required")
			}

			envelope, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("send: reading %s: %w", args[0], err)
			}

			stateDir, err := defaultStateDir()
			if err != nil {
				return err
			}
			addr, err := resolveReceiverAddr(to, receiverDirPath(stateDir))
			if err != nil {
				return err
			}

			return sendEnvelope(addr, envelope)
		},
	}
}
