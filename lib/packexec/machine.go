// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package packexec

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/actionpack/actionpack/lib/keystore"
	"github.com/actionpack/actionpack/lib/packsign"
	"github.com/actionpack/actionpack/lib/policy"
	"github.com/actionpack/actionpack/lib/replay"
	"github.com/actionpack/actionpack/lib/runner"
	"github.com/actionpack/actionpack/lib/sandboxfs"
	"github.com/actionpack/actionpack/lib/trace"
	"github.com/actionpack/actionpack/lib/wire"
)

// ClockSkew is the tolerance applied when checking a pack's created_ms
// and expires_ms against the receiver's clock.
const ClockSkew = 30 * time.Second

// Executor runs one connection's pack from request bytes to transcript.
// Writer may be nil when the receiver has no sandbox root configured
// (the root is otherwise taken from Writer.Root()), in which case write
// steps always fail and
// relative-with-slash commands are always rejected.
type Executor struct {
	Keystore *keystore.Keystore
	Policies *policy.Policies
	Replay   *replay.Cache
	Writer   *sandboxfs.Writer
	Home     string
	Sink     trace.Sink
	Now      func() int64

	// MaxOutputBytes caps captured stdout/stderr per exec step. Zero
	// falls back to runner.DefaultMaxOutputBytes.
	MaxOutputBytes int
}

func (e *Executor) now() int64 {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UnixMilli()
}

func (e *Executor) emit(ctx context.Context, packID, keyID, state string, stepIndex int, detail string, err error) {
	if e.Sink == nil {
		return
	}
	e.Sink.Emit(ctx, trace.Event{
		Time:      time.Now(),
		PackID:    packID,
		KeyID:     keyID,
		State:     state,
		StepIndex: stepIndex,
		Detail:    detail,
		Err:       err,
	})
}

// Handle runs the full state machine over a single request and returns
// the transcript bytes to write back to the sender.
func (e *Executor) Handle(ctx context.Context, request []byte) []byte {
	var t Transcript

	envelope, err := wire.DecodeEnvelope(request)
	if err != nil {
		e.emit(ctx, "", "", "ParseEnvelope", -1, "", err)
		t.WriteErr(fmt.Sprintf("bad envelope: %v", err))
		return t.Bytes()
	}

	pack, err := wire.DecodePayload(envelope.Payload)
	if err != nil {
		e.emit(ctx, "", "", "ParsePayload", -1, "", err)
		t.WriteErr(fmt.Sprintf("bad payload: %v", err))
		return t.Bytes()
	}
	packIDHex := hex.EncodeToString(pack.PackID[:])

	pol, err := e.Policies.Lookup(pack.KeyID)
	if err != nil {
		e.emit(ctx, packIDHex, pack.KeyID, "LookupPolicy", -1, "", err)
		t.WriteErr(fmt.Sprintf("policy missing for key_id: %s", pack.KeyID))
		return t.Bytes()
	}

	pubkeyB64, ok := e.Keystore.Lookup(pack.KeyID)
	if !ok {
		e.emit(ctx, packIDHex, pack.KeyID, "LookupKey", -1, "", nil)
		t.WriteErr(fmt.Sprintf("unknown key_id: %s", pack.KeyID))
		return t.Bytes()
	}

	if err := packsign.Verify(pubkeyB64, envelope.Payload, envelope.Signature); err != nil {
		e.emit(ctx, packIDHex, pack.KeyID, "Verify", -1, "", err)
		t.WriteErr(fmt.Sprintf("signature invalid: %v", err))
		return t.Bytes()
	}

	nowMs := e.now()
	skewMs := int64(ClockSkew / time.Millisecond)
	if int64(pack.CreatedMs) > nowMs+skewMs {
		e.emit(ctx, packIDHex, pack.KeyID, "CheckTime", -1, "created_ms in future", nil)
		t.WriteErr("created_ms in future")
		return t.Bytes()
	}
	if pack.ExpiresMs != 0 && int64(pack.ExpiresMs) < nowMs-skewMs {
		e.emit(ctx, packIDHex, pack.KeyID, "CheckTime", -1, "pack expired", nil)
		t.WriteErr("pack expired")
		return t.Bytes()
	}

	if e.Replay != nil {
		if err := e.Replay.CheckAndInsert(pack.PackID, pack.ExpiresMs, nowMs); err != nil {
			e.emit(ctx, packIDHex, pack.KeyID, "CheckReplay", -1, "", err)
			t.WriteErr("replay")
			return t.Bytes()
		}
	}

	e.emit(ctx, packIDHex, pack.KeyID, "RunSteps", -1, "", nil)
	t.WriteOK(pack.PackID, len(pack.Steps))

	root := ""
	if e.Writer != nil {
		root = e.Writer.Root()
	}
	configured := e.Policies.Configured()
	env := filterEnv(pack.Env, pol, configured)
	writtenByPack := make(map[string]bool)

	for i, step := range pack.Steps {
		var ok bool
		switch s := step.(type) {
		case wire.WriteFileStep:
			ok = e.runWrite(ctx, &t, i, s, pol, root, writtenByPack, packIDHex, pack.KeyID)
		case wire.ExecStep:
			ok = e.runExec(ctx, &t, i, s, pol, root, env, writtenByPack, packIDHex, pack.KeyID)
		default:
			e.emit(ctx, packIDHex, pack.KeyID, "RunSteps", i, "unknown step type", nil)
			t.WriteStepErr(i, ErrUnknownStepType.Error())
			ok = false
		}
		if !ok {
			return t.Bytes()
		}
	}

	e.emit(ctx, packIDHex, pack.KeyID, "Done", -1, "", nil)
	return t.Bytes()
}

// runWrite returns false when the write failed — a write error stops
// the step loop, per the transcript error-propagation rule.
func (e *Executor) runWrite(ctx context.Context, t *Transcript, i int, s wire.WriteFileStep, pol policy.KeyPolicy, root string, writtenByPack map[string]bool, packID, keyID string) bool {
	path := expandVars(s.Path, e.Home)
	if e.Writer == nil {
		t.WriteStepWriteErr(i, "no sandbox root configured")
		e.emit(ctx, packID, keyID, "RunSteps", i, "write: no sandbox root", nil)
		return false
	}
	canonical, err := e.Writer.Write(path, s.Data, s.Mode, pol.AllowExecWrites)
	if err != nil {
		t.WriteStepWriteErr(i, err.Error())
		e.emit(ctx, packID, keyID, "RunSteps", i, "write failed", err)
		return false
	}
	writtenByPack[canonical] = true
	t.WriteStepWriteOK(i, len(s.Data), canonical)
	e.emit(ctx, packID, keyID, "RunSteps", i, "write ok", nil)
	return true
}

// runExec runs one exec step and returns false when the connection's
// transcript is complete and the caller must stop the step loop.
func (e *Executor) runExec(ctx context.Context, t *Transcript, i int, s wire.ExecStep, pol policy.KeyPolicy, root string, env []string, writtenByPack map[string]bool, packID, keyID string) bool {
	if len(s.Argv) == 0 {
		t.WriteStepErr(i, ErrEmptyArgv.Error())
		return false
	}

	cwd, err := resolveCwd(s.Cwd, root, e.Home)
	if err != nil {
		t.WriteStepErr(i, err.Error())
		return false
	}

	argv0 := expandVars(s.Argv[0], e.Home)
	resolvedCmd, err := resolveCmd(argv0, cwd, root)
	if err != nil {
		t.WriteStepErr(i, err.Error())
		return false
	}

	if !allowExec(resolvedCmd, root, pol.AllowedCmds, pol.AllowRootScripts, writtenByPack) {
		t.WriteStepErr(i, ErrCmdNotAllowed.Error())
		return false
	}

	argv := make([]string, len(s.Argv))
	argv[0] = resolvedCmd
	for j := 1; j < len(s.Argv); j++ {
		argv[j] = expandVars(s.Argv[j], e.Home)
	}

	result, err := runner.Run(runner.Options{
		Argv:           argv,
		Cwd:            cwd,
		Env:            env,
		Timeout:        time.Duration(s.TimeoutMs) * time.Millisecond,
		MaxOutputBytes: e.MaxOutputBytes,
	})
	if err != nil {
		// A spawn-time failure (not a nonzero exit — the process never
		// ran) is reported inline on the exec line rather than as a
		// STEP ERR, but it still stops the loop: there is nothing
		// meaningful to run next.
		t.WriteStepExec(i, -1, 0, false, err.Error(), nil, nil)
		e.emit(ctx, packID, keyID, "RunSteps", i, "exec spawn failed", err)
		return false
	}

	// A nonzero exit code is a reported outcome, not a step failure:
	// the loop continues so later steps still run.
	t.WriteStepExec(i, result.ExitCode, result.Duration.Milliseconds(), result.TimedOut, "", result.Stdout, result.Stderr)
	e.emit(ctx, packID, keyID, "RunSteps", i, "exec complete", nil)
	return true
}
