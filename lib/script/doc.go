// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package script compiles a line-oriented authoring script into a
// wire.Pack. A script is UTF-8 text: blank lines and lines beginning
// with # are ignored, every other line is tokenized on whitespace with
// support for single/double quoting and backslash escaping, and the
// first token selects one of a fixed set of instructions.
package script
