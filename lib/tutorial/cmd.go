// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package tutorial exercises the data-management API end to end: it
// builds the documented polymer-simulation example graph, validates
// it, and saves it to the service the way a new user's first session
// would.
package tutorial

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"git.criptapp.org/cript.git/lib/cmd"
	"git.criptapp.org/cript.git/sdk/go/cript"
	"git.criptapp.org/cript.git/sdk/go/ctxlog"
	"git.criptapp.org/cript.git/sdk/go/filestore"
	"github.com/sirupsen/logrus"
)

type Command struct {
	projectName string
}

func (tut Command) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f := flag.NewFlagSet("", flag.ContinueOnError)
	f.StringVar(&tut.projectName, "project-name", "cript tutorial", "name of the project to create on the service")
	loglevel := f.String("log-level", "info", "logging level (debug, info, warning, error)")
	dataFile := f.String("data-file", "", "local file to upload and attach to the Data node (optional)")
	save := f.Bool("save", true, "save the project to the service (use -save=false to stop after validation)")
	timeout := f.Duration("timeout", 60*time.Second, "timeout for http requests")
	if ok, code := cmd.ParseFlags(f, prog, args, "", stderr); !ok {
		return code
	}

	logger := ctxlog.New(stdout, "text", *loglevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableLevelTruncation: true})
	ctx := ctxlog.Context(context.Background(), logger)

	infof := logger.Infof
	var errors []string
	errorf := func(f string, args ...interface{}) {
		logger.Errorf(f, args...)
		errors = append(errors, fmt.Sprintf(f, args...))
	}
	defer func() {
		if len(errors) == 0 {
			logger.Info("--- no errors ---")
		} else {
			fmt.Fprint(stdout, "\n--- cut here --- error summary ---\n\n")
			for _, e := range errors {
				logger.Error(e)
			}
		}
	}()

	client := cript.NewClientFromEnv()
	client.Timeout = *timeout

	testname := fmt.Sprintf("getting data-model schema from https://%s/api/v1/schema", client.APIHost)
	logger.Info(testname)
	schema, err := client.Schema(ctx)
	if err != nil {
		errorf("%s: %s", testname, err)
		return 2
	}
	infof("%s: ok, version %s, %d node types", testname, schema.Version, len(schema.NodeTypes))

	testname = "getting controlled vocabulary for condition_key"
	logger.Info(testname)
	voc, err := client.Vocabulary(ctx, "condition_key")
	if err != nil {
		errorf("%s: %s", testname, err)
	} else {
		infof("%s: ok, %d entries", testname, len(voc.Entries))
		if err := voc.Check("temperature"); err != nil {
			errorf("vocabulary check for %q: %s", "temperature", err)
		}
	}

	logger.Info("building project graph")
	project := cript.NewProject(tut.projectName)
	collection := cript.NewCollection("simulations")
	project.Collection = []*cript.Collection{collection}
	experiment := cript.NewExperiment("bulk simulation")
	collection.Experiment = []*cript.Experiment{experiment}

	// software stack shared by all computations
	software := cript.NewSoftware("LAMMPS", "23Jun22")
	config := cript.NewSoftwareConfiguration(software)
	barostat := cript.NewAlgorithm("mc_barostat", "barostat")
	barostat.Parameter = []*cript.Parameter{cript.NewParameter("update_frequency", 1000, "1/ns")}
	thermostat := cript.NewAlgorithm("nose_hoover", "thermostat")
	thermostat.Parameter = []*cript.Parameter{cript.NewParameter("damping_time", 0.1, "ns")}
	config.Algorithm = []*cript.Algorithm{barostat, thermostat}

	// chained computations: initialization -> equilibration -> production
	initialize := cript.NewComputation("initial snapshot", "initialization")
	initialize.SoftwareConfiguration = []*cript.SoftwareConfiguration{config}
	equilibrate := cript.NewComputation("equilibrate", "MD")
	equilibrate.SoftwareConfiguration = []*cript.SoftwareConfiguration{config}
	equilibrate.Condition = []*cript.Condition{
		cript.NewCondition("temperature", "value", 450, "K"),
		cript.NewCondition("pressure", "value", 1, "bar"),
	}
	equilibrate.PrerequisiteComputation = initialize
	production := cript.NewComputation("bulk run", "MD")
	production.SoftwareConfiguration = []*cript.SoftwareConfiguration{config}
	production.PrerequisiteComputation = equilibrate

	// simulation output: a file wrapped in a data node
	source := *dataFile
	if source == "" {
		source = "https://criptapp.org/examples/energies.csv"
	}
	file := cript.NewFile("energies", source, "data")
	data := cript.NewData("energy log", "computation_trajectory", file)
	data.Computation = []*cript.Computation{production}
	production.OutputData = []*cript.Data{data}

	// the simulated material, with its identifiers and results
	polystyrene := cript.NewMaterial("polystyrene",
		cript.NewIdentifier("bigsmiles", "[H]{[>][<]C(C[>])c1ccccc1[]}"),
		cript.NewIdentifier("chem_repeat", "C8H8"),
	)
	polystyrene.Keyword = []string{"polymer"}
	density := cript.NewProperty("density", "value", 1.047, "g/mL")
	density.Condition = []*cript.Condition{cript.NewCondition("temperature", "value", 450, "K")}
	density.Data = []*cript.Data{data}
	polystyrene.Property = []*cript.Property{density}
	polystyrene.ComputationalForcefield = cript.NewComputationalForcefield("opls_aa", "atom")
	project.Material = []*cript.Material{polystyrene}

	infof("building project graph: ok, %d nodes", len(cript.FindChildren(project, map[string]interface{}{}, -1)))

	if *dataFile != "" {
		testname = fmt.Sprintf("uploading %s to project file storage", *dataFile)
		logger.Info(testname)
		store, err := filestore.Open(ctx, client)
		if err != nil {
			errorf("%s: %s", testname, err)
		} else if err = store.Upload(ctx, file); err != nil {
			errorf("%s: %s", testname, err)
		} else {
			infof("%s: ok, object %s", testname, file.ObjectName)
		}
	}

	// The computations and data were linked to each other but never
	// listed in the experiment; validation flags them as orphaned
	// and AddOrphanedNodes files them in the right place.
	testname = "validating project graph"
	logger.Info(testname)
	err = client.ValidateNode(ctx, project)
	if orphan, ok := err.(*cript.OrphanedNodeError); ok {
		infof("%s: repairing: %s", testname, orphan)
		err = cript.AddOrphanedNodes(project, experiment, 100)
	}
	if err != nil {
		errorf("%s: %s", testname, err)
		return 2
	}
	infof("%s: ok", testname)

	if !*save {
		infof("skipping save (-save=false)")
		return 0
	}
	testname = fmt.Sprintf("saving project %q", tut.projectName)
	logger.Info(testname)
	err = client.Save(ctx, project)
	if err != nil {
		errorf("%s: %s", testname, err)
		return 2
	}
	infof("%s: ok, uuid = %s", testname, project.UUID)

	testname = "searching for the saved project by exact name"
	logger.Info(testname)
	pager, err := client.Search(&cript.Project{}, cript.SearchModeExactName, tut.projectName, cript.SearchParams{})
	if err != nil {
		errorf("%s: %s", testname, err)
		return 2
	}
	page, err := pager.Page(ctx)
	if err != nil {
		errorf("%s: %s", testname, err)
	} else {
		infof("%s: ok, %d matching", testname, page.ItemsAvailable)
	}
	return 0
}
