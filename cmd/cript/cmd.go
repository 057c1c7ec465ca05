// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"git.criptapp.org/cript.git/lib/cli"
	"git.criptapp.org/cript.git/lib/cmd"
	"git.criptapp.org/cript.git/lib/tutorial"
)

var (
	// Accept the common flags before the subcommand too, e.g.
	// "cript -format=uuid get project <uuid>".
	handler = cmd.WithLateSubcommand(cmd.Multi(map[string]cmd.RunFunc{
		"version":   cmd.Version,
		"-version":  cmd.Version,
		"--version": cmd.Version,

		"get":    cli.Get,
		"search": cli.Search,
		"save":   cli.Save,
		"vocab":  cli.Vocab,
		"upload": cli.Upload,

		"tutorial": tutorial.Command{}.RunCommand,
	}), []string{"format", "f", "mode", "limit", "name", "type"}, []string{"short", "s"})
)

func main() {
	os.Exit(handler(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
