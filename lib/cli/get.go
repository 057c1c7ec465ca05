// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the subcommands of the cript command line
// tool.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"git.criptapp.org/cript.git/lib/cmd"
	"git.criptapp.org/cript.git/sdk/go/cript"
	"github.com/ghodss/yaml"
)

// resourceTypes maps the type argument accepted on the command line
// to the node's API endpoint.
var resourceTypes = map[string]bool{
	"project":             true,
	"collection":          true,
	"experiment":          true,
	"inventory":           true,
	"material":            true,
	"process":             true,
	"computation":         true,
	"computation_process": true,
	"data":                true,
	"file":                true,
	"reference":           true,
	"software":            true,
	"user":                true,
	"group":               true,
}

func resourceTypeList() string {
	var types []string
	for t := range resourceTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}

func Get(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()

	flags := flag.NewFlagSet("", flag.ContinueOnError)
	format := flags.String("format", "json", "output format (json, yaml, or uuid)")
	flags.StringVar(format, "f", "json", "output format (json, yaml, or uuid)")
	short := flags.Bool("short", false, "equivalent to -format=uuid")
	flags.BoolVar(short, "s", false, "equivalent to -format=uuid")
	if ok, code := cmd.ParseFlags(flags, prog, args, "type uuid", stderr); !ok {
		return code
	}
	if len(flags.Args()) != 2 {
		fmt.Fprintf(stderr, "usage: %s [options] type uuid\n", prog)
		return 2
	}
	if *short {
		*format = "uuid"
	}

	rsc, id := flags.Args()[0], flags.Args()[1]
	if !resourceTypes[rsc] {
		err = fmt.Errorf("unknown resource type %q (must be one of %s)", rsc, resourceTypeList())
		return 2
	}
	client := cript.NewClientFromEnv()

	path := "api/v1/" + rsc + "/" + id
	var obj map[string]interface{}
	err = client.RequestAndDecode(&obj, "GET", path, nil, nil)
	if err != nil {
		err = fmt.Errorf("GET %s: %s", path, err)
		return 1
	}
	err = writeNode(stdout, obj, *format)
	if err != nil {
		err = fmt.Errorf("encoding: %s", err)
		return 1
	}
	return 0
}

func writeNode(stdout io.Writer, obj map[string]interface{}, format string) error {
	if format == "yaml" {
		buf, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = stdout.Write(buf)
		return err
	} else if format == "uuid" {
		_, err := fmt.Fprintln(stdout, obj["uuid"])
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}
