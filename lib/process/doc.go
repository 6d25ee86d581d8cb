// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers shared by the
// Action Pack command-line tools. It centralizes the one legitimate raw
// I/O pattern that exists before the structured logger is wired up:
// fatal error reporting to stderr followed by process exit.
package process
