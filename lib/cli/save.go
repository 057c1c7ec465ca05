// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"git.criptapp.org/cript.git/lib/cmd"
	"git.criptapp.org/cript.git/sdk/go/cript"
)

// Save reads node JSON from a file (or stdin, with "-"), validates it
// against the service schema, and creates or updates the node on the
// service.
func Save(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()

	flags := flag.NewFlagSet("", flag.ContinueOnError)
	if ok, code := cmd.ParseFlags(flags, prog, args, "file.json", stderr); !ok {
		return code
	}
	if len(flags.Args()) != 1 {
		fmt.Fprintf(stderr, "usage: %s file.json\n", prog)
		return 2
	}

	var buf []byte
	if path := flags.Args()[0]; path == "-" {
		buf, err = io.ReadAll(stdin)
	} else {
		buf, err = os.ReadFile(path)
	}
	if err != nil {
		return 1
	}
	node, err := cript.LoadNode(buf)
	if err != nil {
		return 1
	}

	client := cript.NewClientFromEnv()
	err = client.Save(context.Background(), node)
	if err != nil {
		return 1
	}
	fmt.Fprintf(stdout, "%s %s saved\n", cript.NodeKind(node), cript.NodeUUID(node))
	return 0
}
