// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy loads the receiver's per-key_id authorization records
// from a flat text file: each non-comment line starts with a key_id
// followed by whitespace-separated k=v tokens (cmd=, env=,
// allow_root_scripts=, allow_exec_writes=). When no policy file is
// configured, Default provides the built-in fallback policy applied to
// every key_id.
package policy
