// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolicyAppliesToEveryKey(t *testing.T) {
	p := Default()
	pol, err := p.Lookup("anything")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !pol.AllowedCmds["/bin/echo"] {
		t.Fatalf("default policy missing /bin/echo")
	}
	if !pol.AllowRootScripts || pol.AllowExecWrites {
		t.Fatalf("got allow_root_scripts=%v allow_exec_writes=%v", pol.AllowRootScripts, pol.AllowExecWrites)
	}
	if len(pol.AllowedEnv) != 0 {
		t.Fatalf("default policy should forward no env keys, got %v", pol.AllowedEnv)
	}
}

func TestLoadParsesTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy")
	content := "k1 cmd=/bin/echo cmd=/usr/bin/curl env=PATH allow_root_scripts=true allow_exec_writes=yes\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	policies, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pol, err := policies.Lookup("k1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !pol.AllowedCmds["/bin/echo"] || !pol.AllowedCmds["/usr/bin/curl"] {
		t.Fatalf("got cmds=%v", pol.AllowedCmds)
	}
	if !pol.AllowedEnv["PATH"] {
		t.Fatalf("got env=%v", pol.AllowedEnv)
	}
	if !pol.AllowRootScripts || !pol.AllowExecWrites {
		t.Fatalf("got allow_root_scripts=%v allow_exec_writes=%v", pol.AllowRootScripts, pol.AllowExecWrites)
	}
}

func TestLookupMissingKeyWithConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy")
	if err := os.WriteFile(path, []byte("k1 cmd=/bin/echo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	policies, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := policies.Lookup("k2"); !errors.Is(err, ErrPolicyMissing) {
		t.Fatalf("got %v, want ErrPolicyMissing", err)
	}
}

func TestParseBoolVocabulary(t *testing.T) {
	trueForms := []string{"1", "true", "TRUE", "yes", "on"}
	falseForms := []string{"0", "false", "FALSE", "no", "off"}
	for _, s := range trueForms {
		if b, err := ParseBool(s); err != nil || !b {
			t.Errorf("ParseBool(%q) = %v, %v; want true, nil", s, b, err)
		}
	}
	for _, s := range falseForms {
		if b, err := ParseBool(s); err != nil || b {
			t.Errorf("ParseBool(%q) = %v, %v; want false, nil", s, b, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Errorf("ParseBool(\"maybe\") expected error")
	}
}
