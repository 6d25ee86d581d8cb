// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package packexec

import (
	"strings"

	"github.com/actionpack/actionpack/lib/policy"
	"github.com/actionpack/actionpack/lib/wire"
)

// filterEnv drops entries whose key is always denied (DYLD_/LD_
// prefixes) or, when a policy is configured, not present in its
// AllowedEnv set. Order is preserved.
func filterEnv(entries []wire.EnvEntry, pol policy.KeyPolicy, configured bool) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Key, "DYLD_") || strings.HasPrefix(e.Key, "LD_") {
			continue
		}
		if configured && !pol.AllowedEnv[e.Key] {
			continue
		}
		out = append(out, e.Key+"="+e.Value)
	}
	return out
}

// expandVars performs the pack's restricted variable expansion: a
// leading "~/" or bare "~" expands to home, and the substrings $HOME
// and ${HOME} expand to home wherever they occur. If home is unknown
// (empty), expansion is a no-op.
func expandVars(s, home string) string {
	if home == "" {
		return s
	}
	if s == "~" {
		return home
	}
	if strings.HasPrefix(s, "~/") {
		s = home + s[1:]
	}
	s = strings.ReplaceAll(s, "${HOME}", home)
	s = strings.ReplaceAll(s, "$HOME", home)
	return s
}
