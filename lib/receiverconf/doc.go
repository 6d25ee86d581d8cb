// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package receiverconf parses action_pack_receiver.conf, the flat
// key-value file that names the keystore, policy file, and sandbox
// root a receiver daemon needs, plus the server's listen address and
// resource limits. The replay cache is not named here; the daemon keeps
// it beside this file. It is
// the same line-oriented family of parser as lib/keystore and
// lib/policy: "#"-comments and blank lines skipped, one "key value"
// pair per line, no nesting.
package receiverconf
