// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"git.criptapp.org/cript.git/lib/cmd"
	"git.criptapp.org/cript.git/sdk/go/cript"
	"git.criptapp.org/cript.git/sdk/go/ctxlog"
	"git.criptapp.org/cript.git/sdk/go/filestore"
)

// Upload sends a local file to the project object store and prints
// the resulting File node as JSON, ready to be linked into a Data
// node.
func Upload(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()

	flags := flag.NewFlagSet("", flag.ContinueOnError)
	name := flags.String("name", "", "name of the File node (default: file basename)")
	fileType := flags.String("type", "data", "file_type vocabulary value")
	if ok, code := cmd.ParseFlags(flags, prog, args, "path", stderr); !ok {
		return code
	}
	if len(flags.Args()) != 1 {
		fmt.Fprintf(stderr, "usage: %s [options] path\n", prog)
		return 2
	}
	path := flags.Args()[0]
	if *name == "" {
		*name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	ctx := ctxlog.Context(context.Background(), ctxlog.New(stderr, "text", "info"))
	client := cript.NewClientFromEnv()
	store, err := filestore.Open(ctx, client)
	if err != nil {
		return 1
	}
	f := cript.NewFile(*name, path, *fileType)
	err = store.Upload(ctx, f)
	if err != nil {
		return 1
	}
	out, err := cript.NodeJSON(f)
	if err != nil {
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}
