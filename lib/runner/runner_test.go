// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"strings"
	"testing"
	"time"
)

func TestRunCapturesStdoutAndExitCode(t *testing.T) {
	result, err := Run(Options{Argv: []string{"/bin/echo", "hello"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0", result.ExitCode)
	}
	if strings.TrimSpace(string(result.Stdout)) != "hello" {
		t.Fatalf("Stdout = %q, want %q", result.Stdout, "hello")
	}
}

func TestRunCapturesNonZeroExitCode(t *testing.T) {
	result, err := Run(Options{Argv: []string{"/bin/sh", "-c", "exit 7"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 7 {
		t.Fatalf("ExitCode = %d, want 7", result.ExitCode)
	}
}

func TestRunRejectsEmptyArgv(t *testing.T) {
	if _, err := Run(Options{}); err != ErrEmptyArgv {
		t.Fatalf("err = %v, want ErrEmptyArgv", err)
	}
}

func TestRunEnforcesTimeout(t *testing.T) {
	result, err := Run(Options{
		Argv:    []string{"/bin/sh", "-c", "sleep 5"},
		Timeout: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.TimedOut {
		t.Fatalf("expected TimedOut = true")
	}
	if result.Duration > 2*time.Second {
		t.Fatalf("Duration = %v, expected kill well under 2s", result.Duration)
	}
}

func TestRunCapsOutputBytes(t *testing.T) {
	result, err := Run(Options{
		Argv:           []string{"/bin/sh", "-c", "yes | head -c 100000"},
		MaxOutputBytes: 1024,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Stdout) > 1024 {
		t.Fatalf("Stdout len = %d, want <= 1024", len(result.Stdout))
	}
	if !result.StdoutTruncated {
		t.Fatalf("expected StdoutTruncated = true")
	}
}

func TestRunHonorsCwd(t *testing.T) {
	result, err := Run(Options{Argv: []string{"/bin/sh", "-c", "pwd"}, Cwd: "/tmp"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(string(result.Stdout)) != "/tmp" {
		t.Fatalf("pwd = %q, want /tmp", result.Stdout)
	}
}

func TestRunHonorsEnv(t *testing.T) {
	result, err := Run(Options{
		Argv: []string{"/bin/sh", "-c", "echo $GREETING"},
		Env:  []string{"GREETING=ciao"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(string(result.Stdout)) != "ciao" {
		t.Fatalf("Stdout = %q, want %q", result.Stdout, "ciao")
	}
}
