// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrPolicyMissing is returned by Lookup when a policy file is
// configured but has no entry for the requested key_id.
var ErrPolicyMissing = errors.New("policy: missing for key_id")

// KeyPolicy is the per-key_id authorization record.
type KeyPolicy struct {
	AllowedCmds      map[string]bool
	AllowedEnv       map[string]bool
	AllowRootScripts bool
	AllowExecWrites  bool
}

// defaultAllowedCmds is the built-in command allowlist used as the
// fallback when no policy file is configured. lib/packexec's bare-name
// resolution table is a separate list; it also maps env to
// /usr/bin/env, which this allowlist does not include.
var defaultAllowedCmds = []string{
	"/bin/echo", "/bin/cat", "/bin/ls", "/usr/bin/true", "/usr/bin/false",
	"/bin/sh", "/bin/mkdir", "/bin/rm", "/bin/cp", "/bin/mv",
}

// DefaultAllowedCmds returns the built-in command allowlist.
func DefaultAllowedCmds() []string {
	out := make([]string, len(defaultAllowedCmds))
	copy(out, defaultAllowedCmds)
	return out
}

func builtinPolicy() KeyPolicy {
	cmds := make(map[string]bool, len(defaultAllowedCmds))
	for _, c := range defaultAllowedCmds {
		cmds[c] = true
	}
	return KeyPolicy{
		AllowedCmds:      cmds,
		AllowedEnv:       map[string]bool{},
		AllowRootScripts: true,
		AllowExecWrites:  false,
	}
}

// Policies is the full set of per-key_id records loaded from a policy
// file, or the unconfigured state in which Lookup always returns the
// built-in default policy regardless of key_id.
type Policies struct {
	configured bool
	byKey      map[string]KeyPolicy
}

// Default returns an unconfigured Policies: every key_id resolves to
// the built-in default policy.
func Default() *Policies {
	return &Policies{configured: false}
}

// Load parses the policy file at path.
func Load(path string) (*Policies, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("policy: opening %s: %w", path, err)
	}
	defer f.Close()

	p := &Policies{configured: true, byKey: make(map[string]KeyPolicy)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 1 {
			continue
		}
		keyID := fields[0]
		pol := KeyPolicy{AllowedCmds: map[string]bool{}, AllowedEnv: map[string]bool{}}
		for _, tok := range fields[1:] {
			k, v, ok := strings.Cut(tok, "=")
			if !ok {
				return nil, fmt.Errorf("policy: %s: malformed token %q on key_id %s", path, tok, keyID)
			}
			switch k {
			case "cmd":
				pol.AllowedCmds[v] = true
			case "env":
				pol.AllowedEnv[v] = true
			case "allow_root_scripts":
				b, err := ParseBool(v)
				if err != nil {
					return nil, fmt.Errorf("policy: %s: key_id %s: %w", path, keyID, err)
				}
				pol.AllowRootScripts = b
			case "allow_exec_writes":
				b, err := ParseBool(v)
				if err != nil {
					return nil, fmt.Errorf("policy: %s: key_id %s: %w", path, keyID, err)
				}
				pol.AllowExecWrites = b
			default:
				return nil, fmt.Errorf("policy: %s: key_id %s: unknown token key %q", path, keyID, k)
			}
		}
		p.byKey[keyID] = pol
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("policy: reading %s: %w", path, err)
	}
	return p, nil
}

// Lookup returns the policy for key_id. If no policy file was
// configured, the built-in default is returned for every key_id. If a
// policy file was configured and key_id has no entry, it returns
// ErrPolicyMissing.
func (p *Policies) Lookup(keyID string) (KeyPolicy, error) {
	if !p.configured {
		return builtinPolicy(), nil
	}
	pol, ok := p.byKey[keyID]
	if !ok {
		return KeyPolicy{}, fmt.Errorf("%w: %s", ErrPolicyMissing, keyID)
	}
	return pol, nil
}

// Configured reports whether Load (as opposed to Default) produced p.
func (p *Policies) Configured() bool {
	return p.configured
}

// ParseBool accepts the flat-file boolean vocabulary shared by
// lib/policy and lib/receiverconf: {0,1,true,false,yes,no,on,off},
// case-insensitively.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("policy: invalid boolean %q", s)
	}
}
