// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/actionpack/actionpack/lib/clitool"
	"github.com/actionpack/actionpack/lib/receiverdir"
)

func registerCommand() *clitool.Command {
	return &clitool.Command{
		Name:    "register",
		Summary: "Upsert an entry into the receiver directory",
		Usage:   "actionpack register <name> <ip:port>",
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("register: requires <name> <ip:port>")
			}
			stateDir, err := defaultStateDir()
			if err != nil {
				return err
			}
			return receiverdir.Upsert(receiverDirPath(stateDir), args[0], args[1])
		},
	}
}

func receiversCommand() *clitool.Command {
	return &clitool.Command{
		Name:    "receivers",
		Summary: "List the receiver directory",
		Run: func(args []string) error {
			stateDir, err := defaultStateDir()
			if err != nil {
				return err
			}
			entries, err := receiverdir.Load(receiverDirPath(stateDir))
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s\t%s\n", e.Name, e.Addr)
			}
			return nil
		},
	}
}
