// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Command actionpack is the sender CLI: it authors, signs, and
// delivers action packs, and manages the local receiver directory and
// signing keys.
package main

import (
	"fmt"
	"os"

	"github.com/actionpack/actionpack/lib/clitool"
)

func root() *clitool.Command {
	return &clitool.Command{
		Name: "actionpack",
		Description: `actionpack: author and deliver signed action packs.

Compiles small scripts into signed, single-delivery instruction sets
and sends them to a receiver daemon over TCP.`,
		Subcommands: []*clitool.Command{
			keygenCommand(),
			exportPubCommand(),
			packCommand(),
			runCommand(),
			sendCommand(),
			registerCommand(),
			receiversCommand(),
			pairCommand(),
			receiverCommand(),
		},
		Examples: []clitool.Example{
			{Description: "Generate a signing key", Command: "actionpack keygen"},
			{Description: "Pair with a freshly installed receiver", Command: "actionpack pair prod 100.64.1.2:9443"},
			{Description: "Run a script against a registered receiver", Command: "actionpack run deploy.pack --to prod"},
		},
	}
}

func main() {
	if err := root().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
