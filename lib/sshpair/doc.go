// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package sshpair runs the `receiver enable` command on a remote host
// over SSH, for `actionpack pair --ssh`. Authentication goes through the
// invoking user's ssh-agent (SSH_AUTH_SOCK) — no new credential
// material is introduced, and no password or key-file auth path exists
// in this package.
package sshpair
