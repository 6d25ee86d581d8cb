// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package scriptpreview renders a pack script with syntax highlighting
// for `actionpack pack --dry-run`, so authors can spot quoting mistakes
// before a signature is ever produced.
package scriptpreview
