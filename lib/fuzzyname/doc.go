// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuzzyname ranks receiver-directory names against a --to
// query using fzf's fuzzy matching algorithm, so `actionpack run --to
// prod` matches a receiver named "production" without requiring the
// full name.
package fuzzyname
