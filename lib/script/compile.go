// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/actionpack/actionpack/lib/wire"
)

// Result is the output of Compile: the Pack's Env and Steps, plus the
// sender-local label side table. KeyID, PackID, CreatedMs, and ExpiresMs
// are left zero — the caller (cmd/actionpack) fills them in before
// signing, since a script never names its own key or lifetime.
type Result struct {
	Pack wire.Pack

	// Labels maps a step index (into Pack.Steps) to the free-text label
	// the most recent preceding `label` line attached to it. Never
	// encoded onto the wire.
	Labels map[int]string
}

// compiler holds the mutable state threaded across lines of one script.
type compiler struct {
	cwd     string
	timeout uint32

	declaredVersion *int
	hadPut          bool
	pendingLabel    string

	result Result
}

// Compile reads a script from r and produces a Pack plus its label side
// table. A script with zero exec/write steps is an error.
func Compile(r io.Reader) (Result, error) {
	c := &compiler{
		result: Result{Labels: make(map[int]string)},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		tokens, err := tokenize(trimmed)
		if err != nil {
			return Result{}, &CompileError{Line: lineNo, Text: line, Err: err}
		}
		if len(tokens) == 0 {
			continue
		}

		if err := c.compileLine(tokens[0], tokens[1:]); err != nil {
			return Result{}, &CompileError{Line: lineNo, Text: line, Err: err}
		}
		if err := c.checkStepLimits(); err != nil {
			return Result{}, &CompileError{Line: lineNo, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, err
	}

	if len(c.result.Pack.Steps) == 0 {
		return Result{}, ErrNoSteps
	}
	return c.result, nil
}

func (c *compiler) compileLine(instr string, args []string) error {
	switch instr {
	case "cd":
		if len(args) != 1 {
			return ErrArity
		}
		c.cwd = args[0]
		return nil

	case "timeout":
		if len(args) != 1 {
			return ErrArity
		}
		ms, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return ErrArity
		}
		c.timeout = uint32(ms)
		return nil

	case "env":
		if len(args) != 1 {
			return ErrArity
		}
		key, value, ok := strings.Cut(args[0], "=")
		if !ok || key == "" {
			return ErrBadEnvEntry
		}
		c.result.Pack.Env = append(c.result.Pack.Env, wire.EnvEntry{Key: key, Value: value})
		return nil

	case "put":
		if len(args) != 2 {
			return ErrArity
		}
		if c.declaredVersion != nil && *c.declaredVersion < 2 {
			return ErrVersionTooLow
		}
		dest, src := args[0], args[1]
		if !strings.HasPrefix(dest, "/") {
			return ErrNotAbsolute
		}
		if !strings.HasPrefix(src, "@") {
			return ErrBadSourceRef
		}
		data, err := os.ReadFile(strings.TrimPrefix(src, "@"))
		if err != nil {
			return ErrSourceUnreadable
		}
		c.hadPut = true
		c.result.Pack.Steps = append(c.result.Pack.Steps, wire.WriteFileStep{
			Path: dest,
			Data: data,
			Mode: 0644,
		})
		c.attachPendingLabel()
		return nil

	case "exec":
		if len(args) < 1 {
			return ErrArity
		}
		c.result.Pack.Steps = append(c.result.Pack.Steps, wire.ExecStep{
			Argv:      append([]string(nil), args...),
			Cwd:       c.cwd,
			TimeoutMs: c.timeout,
		})
		c.attachPendingLabel()
		return nil

	case "label":
		if len(args) < 1 {
			return ErrArity
		}
		c.pendingLabel = strings.Join(args, " ")
		return nil

	case "require_version":
		if len(args) != 1 {
			return ErrArity
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || (n != 1 && n != 2) {
			return ErrBadVersion
		}
		if n == 1 && c.hadPut {
			return ErrVersionTooLow
		}
		c.declaredVersion = &n
		return nil

	default:
		return ErrUnknownInstruction
	}
}

func (c *compiler) checkStepLimits() error {
	if len(c.result.Pack.Steps) > wire.MaxSteps {
		return wire.ErrTooManySteps
	}
	var total uint64
	for _, s := range c.result.Pack.Steps {
		if w, ok := s.(wire.WriteFileStep); ok {
			total += uint64(len(w.Data))
		}
	}
	if total > wire.MaxWriteBytes {
		return wire.ErrWriteBytesTooLarge
	}
	return nil
}

func (c *compiler) attachPendingLabel() {
	if c.pendingLabel == "" {
		return
	}
	c.result.Labels[len(c.result.Pack.Steps)-1] = c.pendingLabel
	c.pendingLabel = ""
}
