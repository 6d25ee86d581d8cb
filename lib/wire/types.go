// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// StepKind discriminates the two Step variants on the wire. Values match
// the payload opcode exactly, so a decoded Step's Kind() can be written
// straight back out as the opcode byte.
type StepKind uint8

const (
	// StepKindExec is opcode 1: spawn a process and capture its output.
	StepKindExec StepKind = 1
	// StepKindWrite is opcode 2: atomically write a file under the sandbox
	// root. Only valid for payload version 2 and above.
	StepKindWrite StepKind = 2
)

// Step is a closed sum type with exactly two variants, ExecStep and
// WriteFileStep. Callers switch on Kind() (or a type switch on the
// concrete type) rather than testing for a third possibility — any other
// opcode is rejected at decode time and never reaches a Step value.
type Step interface {
	Kind() StepKind
}

// ExecStep spawns argv[0] with the remaining argv entries as arguments,
// in the given working directory, bounded by timeout_ms (0 means no
// timeout).
type ExecStep struct {
	Argv      []string
	Cwd       string
	TimeoutMs uint32
}

// Kind implements Step.
func (ExecStep) Kind() StepKind { return StepKindExec }

// WriteFileStep atomically writes Data to Path (which must be absolute)
// with the given permission bits.
type WriteFileStep struct {
	Path string
	Data []byte
	Mode uint32
}

// Kind implements Step.
func (WriteFileStep) Kind() StepKind { return StepKindWrite }

// EnvEntry is one key/value pair in a Pack's environment map. Pack.Env is
// a slice rather than a Go map so that Encode can reproduce the exact
// byte sequence the caller built, in the caller's order — the codec
// itself imposes no ordering and performs no deduplication.
type EnvEntry struct {
	Key   string
	Value string
}

// Pack is the decoded form of an "APK1" payload: everything the executor
// needs to verify, authorize, and run a delivery.
type Pack struct {
	// Version is the payload format version this Pack was decoded from,
	// or will be written as (Encode always writes 2; 1 is accepted on
	// decode but cannot carry WriteFileStep).
	Version byte

	// Reserved is the payload header's reserved u16 field. It is
	// preserved through decode for forward-compatibility inspection but
	// is never interpreted, and Encode always writes zero regardless of
	// the value a decoded Pack carries.
	Reserved uint16

	KeyID     string
	PackID    [16]byte
	CreatedMs uint64
	ExpiresMs uint64
	Env       []EnvEntry
	Steps     []Step
}

// Envelope is the outer "SAP1" frame: a payload and its detached
// signature over that payload.
type Envelope struct {
	Payload   []byte
	Signature []byte
}

// Invariant limits enforced by both the compiler (lib/script) and the
// decoder (this package).
const (
	// MaxSteps is invariant 1 from the data model: Pack.steps.len() <= 10000.
	MaxSteps = 10_000

	// MaxWriteBytes is invariant 2: the sum of WriteFileStep.Data.len()
	// across one pack must not exceed 8 MiB.
	MaxWriteBytes = 8 * 1024 * 1024

	// MaxKeyIDLen is invariant 5: 1..255 bytes.
	MaxKeyIDLen = 255

	// CurrentVersion is the payload version Encode always produces.
	CurrentVersion = 2
)
