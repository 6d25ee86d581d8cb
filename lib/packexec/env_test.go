// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package packexec

import (
	"testing"

	"github.com/actionpack/actionpack/lib/policy"
	"github.com/actionpack/actionpack/lib/wire"
)

func TestFilterEnvDropsLoaderInjectionRegardlessOfPolicy(t *testing.T) {
	entries := []wire.EnvEntry{
		{Key: "LD_PRELOAD", Value: "evil.so"},
		{Key: "DYLD_INSERT_LIBRARIES", Value: "evil.dylib"},
		{Key: "PATH", Value: "/usr/bin"},
	}
	pol := policy.KeyPolicy{AllowedEnv: map[string]bool{"PATH": true, "LD_PRELOAD": true}}

	got := filterEnv(entries, pol, true)
	if len(got) != 1 || got[0] != "PATH=/usr/bin" {
		t.Fatalf("got %v, want [PATH=/usr/bin]", got)
	}
}

func TestFilterEnvUnconfiguredPassesNonDenylisted(t *testing.T) {
	entries := []wire.EnvEntry{{Key: "GREETING", Value: "hi"}}
	got := filterEnv(entries, policy.KeyPolicy{}, false)
	if len(got) != 1 || got[0] != "GREETING=hi" {
		t.Fatalf("got %v, want [GREETING=hi]", got)
	}
}

func TestFilterEnvConfiguredDropsUnlisted(t *testing.T) {
	entries := []wire.EnvEntry{{Key: "GREETING", Value: "hi"}}
	got := filterEnv(entries, policy.KeyPolicy{AllowedEnv: map[string]bool{}}, true)
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
