// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package keystore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSkipsBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubkeys")
	content := "# comment\n\nk1 QUJD\nk2 REVG\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ks, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pub, ok := ks.Lookup("k1"); !ok || pub != "QUJD" {
		t.Fatalf("k1 = %q, %v", pub, ok)
	}
	if pub, ok := ks.Lookup("k2"); !ok || pub != "REVG" {
		t.Fatalf("k2 = %q, %v", pub, ok)
	}
}

func TestLoadDuplicateKeyOverwritesEarlier(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubkeys")
	content := "k1 FIRST\nk1 SECOND\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ks, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pub, _ := ks.Lookup("k1"); pub != "SECOND" {
		t.Fatalf("k1 = %q, want SECOND", pub)
	}
}

func TestLookupMissingKey(t *testing.T) {
	ks := New()
	if _, ok := ks.Lookup("nope"); ok {
		t.Fatalf("expected miss for unknown key_id")
	}
}
