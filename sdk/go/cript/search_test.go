// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	check "gopkg.in/check.v1"
)

var _ = check.Suite(&searchSuite{})

type searchSuite struct {
	project     *Project
	experiment  *Experiment
	anneal      *Computation
	bulk        *Computation
	polystyrene *Material
}

func (s *searchSuite) SetUpTest(c *check.C) {
	sw := NewSoftware("LAMMPS", "23Jun22")
	cfg := NewSoftwareConfiguration(sw)
	mc := NewAlgorithm("mc_barostat", "barostat")
	mc.Parameter = []*Parameter{NewParameter("update_frequency", 1000, "1/ns")}
	nose := NewAlgorithm("nose_hoover", "thermostat")
	nose.Parameter = []*Parameter{NewParameter("damping_time", 1, "ns")}
	cfg.Algorithm = []*Algorithm{mc, nose}

	s.anneal = NewComputation("anneal", "MD")
	s.anneal.SoftwareConfiguration = []*SoftwareConfiguration{cfg}
	s.anneal.Condition = []*Condition{
		NewCondition("temperature", "value", 450, "K"),
		NewCondition("pressure", "value", 1, "bar"),
	}
	s.bulk = NewComputation("bulk", "MD")
	s.bulk.SoftwareConfiguration = []*SoftwareConfiguration{cfg}
	s.bulk.PrerequisiteComputation = s.anneal

	s.polystyrene = NewMaterial("polystyrene", NewIdentifier("bigsmiles", "[H]{[>][<]C(C[>])c1ccccc1[]}"))
	s.polystyrene.Property = []*Property{NewProperty("mw_n", "value", 5200, "g/mol")}

	s.experiment = NewExperiment("bulk simulation")
	s.experiment.Computation = []*Computation{s.anneal, s.bulk}

	coll := NewCollection("initial")
	coll.Experiment = []*Experiment{s.experiment}
	s.project = NewProject("styrene studies")
	s.project.Collection = []*Collection{coll}
	s.project.Material = []*Material{s.polystyrene}
}

func (s *searchSuite) TestFindByKind(c *check.C) {
	found := FindChildren(s.project, map[string]interface{}{"node": "Computation"}, -1)
	c.Check(found, check.HasLen, 2)

	found = FindChildren(s.project, map[string]interface{}{"node": "Algorithm"}, -1)
	// shared configuration: each algorithm appears once
	c.Check(found, check.HasLen, 2)

	found = FindChildren(s.project, map[string]interface{}{"node": "Inventory"}, -1)
	c.Check(found, check.HasLen, 0)
}

func (s *searchSuite) TestFindByAttribute(c *check.C) {
	found := FindChildren(s.project, map[string]interface{}{"name": "anneal"}, -1)
	c.Assert(found, check.HasLen, 1)
	c.Check(found[0], check.Equals, Node(s.anneal))

	// numeric criteria compare as JSON values
	found = FindChildren(s.project, map[string]interface{}{"value": 450}, -1)
	c.Check(found, check.HasLen, 1)

	// multiple criteria AND together
	found = FindChildren(s.project, map[string]interface{}{"node": "Computation", "name": "bulk"}, -1)
	c.Assert(found, check.HasLen, 1)
	c.Check(found[0], check.Equals, Node(s.bulk))

	found = FindChildren(s.project, map[string]interface{}{"node": "Computation", "name": "polystyrene"}, -1)
	c.Check(found, check.HasLen, 0)
}

func (s *searchSuite) TestFindByListElement(c *check.C) {
	s.experiment.Funding = []string{"NSF", "DOE"}

	// one wanted value matching any element of the list
	found := FindChildren(s.project, map[string]interface{}{"funding": "NSF"}, -1)
	c.Check(found, check.HasLen, 1)

	// list-valued criterion: all elements must be present
	found = FindChildren(s.project, map[string]interface{}{"funding": []interface{}{"NSF", "DOE"}}, -1)
	c.Check(found, check.HasLen, 1)
	found = FindChildren(s.project, map[string]interface{}{"funding": []interface{}{"NSF", "NIH"}}, -1)
	c.Check(found, check.HasLen, 0)
}

func (s *searchSuite) TestFindByChildCriteria(c *check.C) {
	// nested criteria match against the attribute's child nodes
	found := FindChildren(s.project, map[string]interface{}{
		"parameter": map[string]interface{}{"key": "update_frequency"},
	}, -1)
	c.Assert(found, check.HasLen, 1)
	c.Check(found[0].base().Kind(), check.Equals, "Algorithm")

	found = FindChildren(s.project, map[string]interface{}{
		"prerequisite_computation": map[string]interface{}{"name": "anneal"},
	}, -1)
	c.Assert(found, check.HasLen, 1)
	c.Check(found[0], check.Equals, Node(s.bulk))

	// the nested criteria apply to the direct child only, not its
	// descendants
	found = FindChildren(s.project, map[string]interface{}{
		"software_configuration": map[string]interface{}{"key": "mc_barostat"},
	}, -1)
	c.Check(found, check.HasLen, 0)
}

func (s *searchSuite) TestFindDepthLimit(c *check.C) {
	found := FindChildren(s.project, map[string]interface{}{"node": "Computation"}, 0)
	c.Check(found, check.HasLen, 0)
	found = FindChildren(s.experiment, map[string]interface{}{"node": "Computation"}, 1)
	c.Check(found, check.HasLen, 2)
	found = FindChildren(s.project, map[string]interface{}{"node": "Parameter"}, 2)
	c.Check(found, check.HasLen, 0)
}

func (s *searchSuite) TestFindRootIncluded(c *check.C) {
	found := FindChildren(s.project, map[string]interface{}{"node": "Project"}, -1)
	c.Assert(found, check.HasLen, 1)
	c.Check(found[0], check.Equals, Node(s.project))
}

func (s *searchSuite) TestRemoveChild(c *check.C) {
	c.Check(RemoveChild(s.experiment, s.anneal), check.Equals, true)
	c.Check(s.experiment.Computation, check.HasLen, 1)
	c.Check(s.experiment.Computation[0], check.Equals, s.bulk)
	c.Check(RemoveChild(s.experiment, s.anneal), check.Equals, false)

	c.Check(RemoveChild(s.bulk, s.anneal), check.Equals, true)
	c.Check(s.bulk.PrerequisiteComputation, check.IsNil)
}

func (s *searchSuite) TestWalkVisitsSharedOnce(c *check.C) {
	count := map[Node]int{}
	Walk(s.project, func(n Node) { count[n]++ })
	for n, ct := range count {
		c.Check(ct, check.Equals, 1, check.Commentf("%s visited %d times", nodeKind(n), ct))
	}
	// the shared SoftwareConfiguration is reachable from both
	// computations but counted once
	c.Check(count[Node(s.anneal.SoftwareConfiguration[0])], check.Equals, 1)
}
