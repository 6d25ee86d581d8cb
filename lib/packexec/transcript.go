// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package packexec

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Transcript accumulates the plain-text, line-structured response sent
// back to the sender. Every write method appends exactly the lines the
// wire format specifies — no extra formatting, no trailing summary.
type Transcript struct {
	buf bytes.Buffer
}

// Bytes returns the accumulated transcript.
func (t *Transcript) Bytes() []byte {
	return t.buf.Bytes()
}

// WriteOK appends the success header line. Called once, before any
// STEP lines, only when the pack passed every authorization and
// temporal check.
func (t *Transcript) WriteOK(packID [16]byte, steps int) {
	fmt.Fprintf(&t.buf, "OK pack_id=%s steps=%d\n", hex.EncodeToString(packID[:]), steps)
}

// WriteErr appends a top-level error line. Used for envelope, payload,
// policy, key, signature, temporal, and replay failures — every case
// where no step ever ran.
func (t *Transcript) WriteErr(detail string) {
	fmt.Fprintf(&t.buf, "ERR %s\n", detail)
}

// WriteStepWriteOK appends a successful write-step line.
func (t *Transcript) WriteStepWriteOK(index int, bytesWritten int, path string) {
	fmt.Fprintf(&t.buf, "STEP %d write OK bytes=%d path=%s\n", index, bytesWritten, path)
}

// WriteStepWriteErr appends a failed write-step line.
func (t *Transcript) WriteStepWriteErr(index int, message string) {
	fmt.Fprintf(&t.buf, "STEP %d write ERR %s\n", index, message)
}

// WriteStepErr appends a pre-spawn exec failure line — a fixed error
// code, no free-text detail.
func (t *Transcript) WriteStepErr(index int, code string) {
	fmt.Fprintf(&t.buf, "STEP %d ERR %s\n", index, code)
}

// WriteStepExec appends the exec-step summary line, followed by
// fenced STDOUT/STDERR blocks when non-empty. errMsg is the spawn- or
// wait-time error text, empty when the process ran to completion
// (however it exited).
func (t *Transcript) WriteStepExec(index int, exitCode int, durMs int64, timedOut bool, errMsg string, stdout, stderr []byte) {
	fmt.Fprintf(&t.buf, "STEP %d exec exit=%d dur_ms=%d", index, exitCode, durMs)
	if timedOut {
		t.buf.WriteString(" timed_out=1")
	}
	if errMsg != "" {
		fmt.Fprintf(&t.buf, " error=%s", errMsg)
	}
	t.buf.WriteByte('\n')

	if len(stdout) > 0 {
		fmt.Fprintf(&t.buf, "--- STDOUT (%d bytes) ---\n", len(stdout))
		t.buf.Write(stdout)
		t.buf.WriteByte('\n')
	}
	if len(stderr) > 0 {
		fmt.Fprintf(&t.buf, "--- STDERR (%d bytes) ---\n", len(stderr))
		t.buf.Write(stderr)
		t.buf.WriteByte('\n')
	}
}
