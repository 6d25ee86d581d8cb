// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package receiverdir

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	entries, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %v, want empty", entries)
	}
}

func TestUpsertInsertsThenOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receivers")

	if err := Upsert(path, "staging", "100.64.1.2:9443"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := Upsert(path, "prod", "100.64.1.3:9443"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := Upsert(path, "staging", "100.64.1.9:9443"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v, want 2", entries)
	}

	staging, err := Lookup(entries, "staging")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if staging.Addr != "100.64.1.9:9443" {
		t.Fatalf("staging.Addr = %q", staging.Addr)
	}
}

func TestLookupMissingReturnsErrNotFound(t *testing.T) {
	_, err := Lookup(nil, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
