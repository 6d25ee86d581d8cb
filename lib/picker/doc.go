// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package picker implements the sender CLI's interactive receiver
// picker: a small bubbletea program over bubbles/list, shown only when
// --to is omitted, the receiver directory has more than one entry, and
// stdout is a terminal.
package picker
