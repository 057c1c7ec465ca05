// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"git.criptapp.org/cript.git/lib/cmd"
	"git.criptapp.org/cript.git/sdk/go/cript"
)

func Search(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()

	flags := flag.NewFlagSet("", flag.ContinueOnError)
	format := flags.String("format", "table", "output format (table or json)")
	mode := flags.String("mode", string(cript.SearchModeContainsName), "search mode (node_type, exact_name, contains_name, or uuid)")
	limit := flags.Int("limit", 0, "maximum number of results to fetch (0 means all)")
	if ok, code := cmd.ParseFlags(flags, prog, args, "type [query]", stderr); !ok {
		return code
	}
	if n := len(flags.Args()); n < 1 || n > 2 {
		fmt.Fprintf(stderr, "usage: %s [options] type [query]\n", prog)
		return 2
	}
	rsc := flags.Args()[0]
	if !resourceTypes[rsc] {
		err = fmt.Errorf("unknown resource type %q (must be one of %s)", rsc, resourceTypeList())
		return 2
	}
	var query string
	if len(flags.Args()) == 2 {
		query = flags.Args()[1]
	}

	client := cript.NewClientFromEnv()
	example, err := cript.LoadNode([]byte(`{"node":["` + kindForResource(rsc) + `"]}`))
	if err != nil {
		return 1
	}
	pager, err := client.Search(example, cript.SearchMode(*mode), query, cript.SearchParams{})
	if err != nil {
		return 1
	}

	ctx := context.Background()
	tw := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	printed := 0
	for !pager.Done() {
		var page *cript.SearchResult
		page, err = pager.Page(ctx)
		if err != nil {
			return 1
		}
		if len(page.Items) == 0 {
			break
		}
		for _, item := range page.Items {
			if *limit > 0 && printed >= *limit {
				break
			}
			printed++
			if *format == "json" {
				var buf json.RawMessage = item
				enc := json.NewEncoder(stdout)
				err = enc.Encode(buf)
				if err != nil {
					return 1
				}
				continue
			}
			var obj struct {
				UUID string `json:"uuid"`
				Name string `json:"name"`
			}
			if err = json.Unmarshal(item, &obj); err != nil {
				return 1
			}
			fmt.Fprintf(tw, "%s\t%s\n", obj.UUID, obj.Name)
		}
		if *limit > 0 && printed >= *limit {
			break
		}
	}
	if *format != "json" {
		err = tw.Flush()
	}
	return 0
}

// kindForResource returns the node type name for a resource endpoint
// name, e.g. "computation_process" -> "ComputationProcess".
func kindForResource(rsc string) string {
	kind := ""
	upper := true
	for _, r := range rsc {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			kind += string(r - 'a' + 'A')
			upper = false
		} else {
			kind += string(r)
		}
	}
	return kind
}
