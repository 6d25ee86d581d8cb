// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package clitool implements a small subcommand dispatcher shared by
// the sender CLI and the key-lifecycle tool: a Command tree with an
// optional nested Subcommands list, a pflag.FlagSet factory, and a Run
// function, plus typo-tolerant suggestions for unknown commands and
// flags.
package clitool
