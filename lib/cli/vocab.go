// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"git.criptapp.org/cript.git/lib/cmd"
	"git.criptapp.org/cript.git/sdk/go/cript"
)

// Vocab lists the permitted values of a controlled vocabulary
// category, or the category names when called without arguments.
func Vocab(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()

	flags := flag.NewFlagSet("", flag.ContinueOnError)
	if ok, code := cmd.ParseFlags(flags, prog, args, "[category]", stderr); !ok {
		return code
	}
	if len(flags.Args()) == 0 {
		for _, category := range cript.VocabularyCategories {
			fmt.Fprintln(stdout, category)
		}
		return 0
	}
	if len(flags.Args()) != 1 {
		fmt.Fprintf(stderr, "usage: %s [category]\n", prog)
		return 2
	}

	client := cript.NewClientFromEnv()
	voc, err := client.Vocabulary(context.Background(), flags.Args()[0])
	if err != nil {
		return 1
	}
	tw := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	for _, entry := range voc.Entries {
		fmt.Fprintf(tw, "%s\t%s\n", entry.Name, entry.Description)
	}
	err = tw.Flush()
	if err != nil {
		return 1
	}
	return 0
}
