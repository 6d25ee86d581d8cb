// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package scriptpreview

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Render highlights source as a bash-like script for terminal display.
// The pack script language is shell-adjacent (one instruction per line,
// `#` comments, quoted arguments) close enough that bash's lexer
// produces a readable rendering without a bespoke grammar.
func Render(source string) (string, error) {
	var out strings.Builder
	if err := quick.Highlight(&out, source, "bash", "terminal256", "monokai"); err != nil {
		return "", fmt.Errorf("scriptpreview: highlighting: %w", err)
	}
	return out.String(), nil
}
