// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package packexec

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/actionpack/actionpack/lib/keystore"
	"github.com/actionpack/actionpack/lib/packsign"
	"github.com/actionpack/actionpack/lib/policy"
	"github.com/actionpack/actionpack/lib/replay"
	"github.com/actionpack/actionpack/lib/sandboxfs"
	"github.com/actionpack/actionpack/lib/wire"
)

type testEnv struct {
	store    *packsign.Store
	keystore *keystore.Keystore
	policies *policy.Policies
	replay   *replay.Cache
	writer   *sandboxfs.Writer
	root     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	store, err := packsign.Open(dir + "/keys")
	if err != nil {
		t.Fatalf("packsign.Open: %v", err)
	}
	pubkey, err := store.Generate("k1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	ks := keystore.New()
	ks.Put("k1", pubkey)

	root := dir + "/sandbox"
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir sandbox: %v", err)
	}
	writer, err := sandboxfs.New(root)
	if err != nil {
		t.Fatalf("sandboxfs.New: %v", err)
	}

	replayCache, err := replay.Open(dir+"/replay.log", 0)
	if err != nil {
		t.Fatalf("replay.Open: %v", err)
	}

	return &testEnv{
		store:    store,
		keystore: ks,
		policies: policy.Default(),
		replay:   replayCache,
		writer:   writer,
		root:     root,
	}
}

func (e *testEnv) executor(now int64) *Executor {
	return &Executor{
		Keystore: e.keystore,
		Policies: e.policies,
		Replay:   e.replay,
		Writer:   e.writer,
		Now:      func() int64 { return now },
	}
}

func (e *testEnv) sign(t *testing.T, p wire.Pack) []byte {
	t.Helper()
	payload, err := wire.EncodePayload(p)
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	sig, err := e.store.Sign("k1", payload)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	envelope, err := wire.EncodeEnvelope(wire.Envelope{Payload: payload, Signature: sig})
	if err != nil {
		t.Fatalf("EncodeEnvelope: %v", err)
	}
	return envelope
}

func TestHandleHappyExec(t *testing.T) {
	env := newTestEnv(t)
	p := wire.Pack{
		KeyID:     "k1",
		PackID:    [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CreatedMs: 1_000_000,
		ExpiresMs: 1_060_000,
		Steps:     []wire.Step{wire.ExecStep{Argv: []string{"/bin/echo", "hello"}}},
	}
	request := env.sign(t, p)

	out := string(env.executor(1_000_000).Handle(context.Background(), request))
	if !strings.HasPrefix(out, "OK pack_id=0102030405060708090a0b0c0d0e0f10 steps=1\nSTEP 0 exec exit=0 dur_ms=") {
		t.Fatalf("unexpected transcript:\n%s", out)
	}
	if !strings.Contains(out, "--- STDOUT (6 bytes) ---\nhello\n") {
		t.Fatalf("missing stdout block:\n%s", out)
	}
}

func TestHandleWriteThenExecDenied(t *testing.T) {
	env := newTestEnv(t)
	pol, _ := policy.Default().Lookup("k1")
	pol.AllowExecWrites = true
	env.policies = policyWith(t, "k1", pol)

	scriptPath := env.root + "/run.sh"
	p := wire.Pack{
		KeyID:     "k1",
		PackID:    [16]byte{2, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CreatedMs: 1_000_000,
		ExpiresMs: 1_060_000,
		Steps: []wire.Step{
			wire.WriteFileStep{Path: scriptPath, Data: []byte("#!/bin/sh\necho hi\n"), Mode: 0o755},
			wire.ExecStep{Argv: []string{scriptPath}},
		},
	}
	request := env.sign(t, p)

	out := string(env.executor(1_000_000).Handle(context.Background(), request))
	if !strings.Contains(out, "STEP 0 write OK") {
		t.Fatalf("expected step 0 to succeed:\n%s", out)
	}
	if !strings.Contains(out, "STEP 1 ERR cmd_not_allowed") {
		t.Fatalf("expected step 1 denied as cmd_not_allowed:\n%s", out)
	}
}

func TestHandleExpiredPack(t *testing.T) {
	env := newTestEnv(t)
	p := wire.Pack{
		KeyID:     "k1",
		PackID:    [16]byte{3, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CreatedMs: 1_000_000,
		ExpiresMs: 1_000_000,
		Steps:     []wire.Step{wire.ExecStep{Argv: []string{"/bin/echo", "hi"}}},
	}
	request := env.sign(t, p)

	out := string(env.executor(2_000_000).Handle(context.Background(), request))
	if strings.TrimSpace(out) != "ERR pack expired" {
		t.Fatalf("transcript = %q, want ERR pack expired", out)
	}
}

func TestHandleZeroExpiryNeverExpires(t *testing.T) {
	env := newTestEnv(t)
	p := wire.Pack{
		KeyID:     "k1",
		PackID:    [16]byte{9, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CreatedMs: 1_000_000,
		ExpiresMs: 0,
		Steps:     []wire.Step{wire.ExecStep{Argv: []string{"/bin/echo", "hi"}}},
	}
	request := env.sign(t, p)

	// Far past any plausible skew window: a zero expires_ms must still
	// be accepted, since it means "no absolute expiry" rather than
	// "already expired".
	out := string(env.executor(1_000_000_000_000).Handle(context.Background(), request))
	if !strings.HasPrefix(out, "OK pack_id=") {
		t.Fatalf("transcript = %q, want zero-expiry pack accepted", out)
	}

	// The replay cache must have stored the entry as permanent: a
	// second delivery, even further in the future, is still rejected
	// as a replay rather than treated as expired-and-reusable.
	if err := env.replay.CheckAndInsert(p.PackID, p.ExpiresMs, 2_000_000_000_000); err == nil {
		t.Fatalf("expected zero-expiry pack_id to remain permanently seen")
	}
}

func TestHandleReplayRejectsSecondDelivery(t *testing.T) {
	env := newTestEnv(t)
	p := wire.Pack{
		KeyID:     "k1",
		PackID:    [16]byte{4, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CreatedMs: 1_000_000,
		ExpiresMs: 1_060_000,
		Steps:     []wire.Step{wire.ExecStep{Argv: []string{"/bin/echo", "hi"}}},
	}
	request := env.sign(t, p)

	first := string(env.executor(1_000_000).Handle(context.Background(), request))
	if !strings.HasPrefix(first, "OK ") {
		t.Fatalf("first delivery should succeed:\n%s", first)
	}
	second := string(env.executor(1_000_000).Handle(context.Background(), request))
	if strings.TrimSpace(second) != "ERR replay" {
		t.Fatalf("second delivery = %q, want ERR replay", second)
	}
}

func TestHandleInvalidSignature(t *testing.T) {
	env := newTestEnv(t)
	p := wire.Pack{
		KeyID:     "k1",
		PackID:    [16]byte{5, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CreatedMs: 1_000_000,
		ExpiresMs: 1_060_000,
		Steps:     []wire.Step{wire.ExecStep{Argv: []string{"/bin/echo", "hi"}}},
	}
	request := env.sign(t, p)
	request[len(request)-1] ^= 0xFF

	out := string(env.executor(1_000_000).Handle(context.Background(), request))
	if !strings.HasPrefix(out, "ERR signature invalid") {
		t.Fatalf("transcript = %q, want ERR signature invalid prefix", out)
	}
}

func TestHandleUnknownKeyID(t *testing.T) {
	env := newTestEnv(t)
	p := wire.Pack{
		KeyID:     "nope",
		PackID:    [16]byte{6, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CreatedMs: 1_000_000,
		ExpiresMs: 1_060_000,
		Steps:     []wire.Step{wire.ExecStep{Argv: []string{"/bin/echo", "hi"}}},
	}
	payload, err := wire.EncodePayload(p)
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	// Sign with the registered key so only key lookup is exercised.
	sig, err := env.store.Sign("k1", payload)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	envelope, err := wire.EncodeEnvelope(wire.Envelope{Payload: payload, Signature: sig})
	if err != nil {
		t.Fatalf("EncodeEnvelope: %v", err)
	}

	out := string(env.executor(1_000_000).Handle(context.Background(), envelope))
	if strings.TrimSpace(out) != "ERR unknown key_id: nope" {
		t.Fatalf("transcript = %q, want ERR unknown key_id: nope", out)
	}
}

func TestHandleDeniesLoaderInjectionEnv(t *testing.T) {
	env := newTestEnv(t)
	p := wire.Pack{
		KeyID:     "k1",
		PackID:    [16]byte{7, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CreatedMs: 1_000_000,
		ExpiresMs: 1_060_000,
		Env:       []wire.EnvEntry{{Key: "LD_PRELOAD", Value: "evil.so"}, {Key: "GREETING", Value: "hi"}},
		Steps:     []wire.Step{wire.ExecStep{Argv: []string{"/bin/sh", "-c", "echo $LD_PRELOAD:$GREETING"}}},
	}
	request := env.sign(t, p)

	out := string(env.executor(1_000_000).Handle(context.Background(), request))
	if !strings.Contains(out, "--- STDOUT (4 bytes) ---\n:hi\n") {
		t.Fatalf("expected LD_PRELOAD dropped but GREETING forwarded under the unconfigured default policy:\n%s", out)
	}
}

func policyWith(t *testing.T, keyID string, pol policy.KeyPolicy) *policy.Policies {
	t.Helper()
	path := t.TempDir() + "/policy.conf"
	lines := []string{keyID}
	for cmd := range pol.AllowedCmds {
		lines[0] += " cmd=" + cmd
	}
	for env := range pol.AllowedEnv {
		lines[0] += " env=" + env
	}
	if pol.AllowRootScripts {
		lines[0] += " allow_root_scripts=true"
	}
	if pol.AllowExecWrites {
		lines[0] += " allow_exec_writes=true"
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	policies, err := policy.Load(path)
	if err != nil {
		t.Fatalf("policy.Load: %v", err)
	}
	return policies
}
