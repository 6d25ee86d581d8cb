// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/actionpack/actionpack/lib/wire"
)

func TestCompileBasicExec(t *testing.T) {
	src := "cd /tmp\ntimeout 5000\nexec /bin/echo hello\n"
	res, err := Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(res.Pack.Steps) != 1 {
		t.Fatalf("got %d steps, want 1", len(res.Pack.Steps))
	}
	exec, ok := res.Pack.Steps[0].(wire.ExecStep)
	if !ok {
		t.Fatalf("step 0 is %T, want ExecStep", res.Pack.Steps[0])
	}
	if exec.Cwd != "/tmp" || exec.TimeoutMs != 5000 {
		t.Fatalf("got cwd=%q timeout=%d", exec.Cwd, exec.TimeoutMs)
	}
	if len(exec.Argv) != 2 || exec.Argv[0] != "/bin/echo" || exec.Argv[1] != "hello" {
		t.Fatalf("got argv=%v", exec.Argv)
	}
}

func TestCompileQuotingAndEscapes(t *testing.T) {
	src := `exec /bin/echo "hello world" 'single quoted' escaped\ space`
	res, err := Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	exec := res.Pack.Steps[0].(wire.ExecStep)
	want := []string{"/bin/echo", "hello world", "single quoted", "escaped space"}
	if len(exec.Argv) != len(want) {
		t.Fatalf("got argv=%v, want %v", exec.Argv, want)
	}
	for i := range want {
		if exec.Argv[i] != want[i] {
			t.Fatalf("argv[%d]=%q, want %q", i, exec.Argv[i], want[i])
		}
	}
}

func TestCompileEnvEntry(t *testing.T) {
	src := "env FOO=bar\nexec /bin/true\n"
	res, err := Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(res.Pack.Env) != 1 || res.Pack.Env[0].Key != "FOO" || res.Pack.Env[0].Value != "bar" {
		t.Fatalf("got env=%v", res.Pack.Env)
	}
}

func TestCompileEnvOrderPreserved(t *testing.T) {
	src := "env B=2\nenv A=1\nenv C=3\nexec /bin/true\n"
	res, err := Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []string{"B", "A", "C"}
	for i, k := range want {
		if res.Pack.Env[i].Key != k {
			t.Fatalf("env[%d].Key = %q, want %q", i, res.Pack.Env[i].Key, k)
		}
	}
}

func TestCompilePut(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "payload.txt")
	if err := os.WriteFile(srcPath, []byte("hi there"), 0644); err != nil {
		t.Fatal(err)
	}

	src := "put /tmp/sandbox/payload.txt @" + srcPath + "\n"
	res, err := Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	w := res.Pack.Steps[0].(wire.WriteFileStep)
	if w.Path != "/tmp/sandbox/payload.txt" || string(w.Data) != "hi there" || w.Mode != 0644 {
		t.Fatalf("got write step %+v", w)
	}
}

func TestCompileLabelAttachesToNextStep(t *testing.T) {
	src := "label greet\nexec /bin/echo hi\nexec /bin/echo unlabeled\n"
	res, err := Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Labels[0] != "greet" {
		t.Fatalf("labels[0] = %q, want %q", res.Labels[0], "greet")
	}
	if _, ok := res.Labels[1]; ok {
		t.Fatalf("step 1 unexpectedly labeled: %q", res.Labels[1])
	}
}

func TestCompileRequireVersionConflictsWithPut(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "f.txt")
	os.WriteFile(srcPath, []byte("x"), 0644)

	src := "require_version 1\nput /tmp/sandbox/f.txt @" + srcPath + "\n"
	if _, err := Compile(strings.NewReader(src)); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestCompileZeroStepsIsError(t *testing.T) {
	src := "cd /tmp\nenv FOO=bar\n"
	if _, err := Compile(strings.NewReader(src)); err == nil {
		t.Fatalf("expected ErrNoSteps, got nil")
	}
}

func TestCompileBlankAndCommentLinesIgnored(t *testing.T) {
	src := "# a comment\n\nexec /bin/true\n   \n# trailing\n"
	res, err := Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(res.Pack.Steps) != 1 {
		t.Fatalf("got %d steps, want 1", len(res.Pack.Steps))
	}
}

func TestCompileUnknownInstruction(t *testing.T) {
	if _, err := Compile(strings.NewReader("frobnicate /tmp\n")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
