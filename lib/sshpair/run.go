// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package sshpair

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/user"
	"path/filepath"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// ErrNoAgent is returned when SSH_AUTH_SOCK is unset or unreachable:
// there is no key material this package is willing to touch directly.
var ErrNoAgent = errors.New("sshpair: no ssh-agent available (SSH_AUTH_SOCK unset)")

// Run connects to host (appending the default SSH port if none is
// given), runs command, and streams its stdout/stderr to the given
// writers. Host key verification uses the invoking user's
// ~/.ssh/known_hosts.
func Run(host, command string, stdout, stderr io.Writer) error {
	authMethod, err := agentAuth()
	if err != nil {
		return err
	}

	hostKeyCallback, err := knownHostsCallback()
	if err != nil {
		return err
	}

	currentUser, err := user.Current()
	if err != nil {
		return fmt.Errorf("sshpair: resolving local user: %w", err)
	}

	addr := host
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(host, "22")
	}

	config := &ssh.ClientConfig{
		User:            currentUser.Username,
		Auth:            []ssh.AuthMethod{authMethod},
		HostKeyCallback: hostKeyCallback,
	}

	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return fmt.Errorf("sshpair: dialing %s: %w", addr, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("sshpair: opening session: %w", err)
	}
	defer session.Close()

	session.Stdout = stdout
	session.Stderr = stderr

	if err := session.Run(command); err != nil {
		return fmt.Errorf("sshpair: running remote command: %w", err)
	}
	return nil
}

func agentAuth() (ssh.AuthMethod, error) {
	sockPath := os.Getenv("SSH_AUTH_SOCK")
	if sockPath == "" {
		return nil, ErrNoAgent
	}
	conn, err := net.Dial("unix", sockPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAgent, err)
	}
	agentClient := agent.NewClient(conn)
	return ssh.PublicKeysCallback(agentClient.Signers), nil
}

func knownHostsCallback() (ssh.HostKeyCallback, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("sshpair: resolving home directory: %w", err)
	}
	callback, err := knownhosts.New(filepath.Join(home, ".ssh", "known_hosts"))
	if err != nil {
		return nil, fmt.Errorf("sshpair: loading known_hosts: %w", err)
	}
	return callback, nil
}
