// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package packexec

import (
	"os"
	"path/filepath"
	"strings"
)

// builtinCmdMap is the fixed bare-name → absolute-path table consulted
// when argv[0] contains no slash at all.
var builtinCmdMap = map[string]string{
	"echo": "/bin/echo",
	"cat":  "/bin/cat",
	"ls":   "/bin/ls",
	"env":  "/usr/bin/env",
	"sh":   "/bin/sh",
	"true": "/usr/bin/true",
}

// resolveCwd expands and canonicalizes a step's working directory
// against root. An empty cwd resolves to root itself when root is
// configured, or to "/" otherwise.
func resolveCwd(cwd, root, home string) (string, error) {
	cwd = expandVars(cwd, home)
	if cwd == "" {
		if root != "" {
			return root, nil
		}
		return "/", nil
	}
	if !filepath.IsAbs(cwd) {
		return "", ErrBadCwd
	}
	canonical, err := filepath.EvalSymlinks(cwd)
	if err != nil {
		return "", ErrBadCwd
	}
	if root != "" && !underRoot(canonical, root) {
		return "", ErrCwdOutsideRoot
	}
	return canonical, nil
}

// resolveCmd implements the three-way command resolution rule: leading
// slash is absolute, a bare name with no slash goes through the fixed
// mapping table, and a relative path containing a slash is joined with
// cwd and must resolve under root.
func resolveCmd(argv0, cwd, root string) (string, error) {
	switch {
	case strings.HasPrefix(argv0, "/"):
		return argv0, nil

	case strings.Contains(argv0, "/"):
		if root == "" {
			return "", ErrRelativeCmdRequiresRoot
		}
		joined := filepath.Join(cwd, argv0)
		canonical, err := filepath.EvalSymlinks(joined)
		if err != nil {
			return "", ErrBadCmdPath
		}
		if !underRoot(canonical, root) {
			return "", ErrCmdOutsideRoot
		}
		return canonical, nil

	default:
		mapped, ok := builtinCmdMap[argv0]
		if !ok {
			return "", ErrCmdNotAllowed
		}
		return mapped, nil
	}
}

func underRoot(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(os.PathSeparator))
}

// allowExec decides whether resolvedCmd may be executed, given the
// policy's static allowlist and the root-script fallback rule: a file
// under root with any execute bit set, not itself written by this
// pack. The allowlist match is against the literal resolved path —
// matching spec.md's "argv[0] ∈ allowed_cmds" — but the root-script
// fallback canonicalizes first, since writtenByPack holds the
// canonical paths sandboxfs recorded for this pack's own writes and a
// symlink must not be usable to dodge that exclusion.
func allowExec(resolvedCmd, root string, allowedCmds map[string]bool, allowRootScripts bool, writtenByPack map[string]bool) bool {
	if allowedCmds[resolvedCmd] {
		return true
	}
	if !allowRootScripts || root == "" {
		return false
	}
	canonical, err := filepath.EvalSymlinks(resolvedCmd)
	if err != nil {
		return false
	}
	if !underRoot(canonical, root) {
		return false
	}
	if writtenByPack[canonical] {
		return false
	}
	info, err := os.Stat(canonical)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
