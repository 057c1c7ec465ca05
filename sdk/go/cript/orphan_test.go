// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	check "gopkg.in/check.v1"
)

var _ = check.Suite(&orphanSuite{})

type orphanSuite struct {
	project    *Project
	collection *Collection
	experiment *Experiment
}

func (s *orphanSuite) SetUpTest(c *check.C) {
	s.experiment = NewExperiment("exp1")
	s.collection = NewCollection("coll1")
	s.collection.Experiment = []*Experiment{s.experiment}
	s.project = NewProject("proj1")
	s.project.Collection = []*Collection{s.collection}
}

func (s *orphanSuite) TestNoOrphans(c *check.C) {
	water := NewMaterial("water")
	s.project.Material = []*Material{water}
	data := NewData("traj", "computation_trajectory")
	comp := NewComputation("sim", "MD")
	comp.OutputData = []*Data{data}
	s.experiment.Computation = []*Computation{comp}
	s.experiment.Data = []*Data{data}
	c.Check(s.project.CheckOrphans(), check.IsNil)
}

func (s *orphanSuite) TestOrphanedMaterial(c *check.C) {
	// A material reachable only through an ingredient is orphaned
	// until it is listed in the project or an inventory.
	styrene := NewMaterial("styrene")
	proc := NewProcess("polymerization", "multistep")
	proc.Ingredient = []*Ingredient{NewIngredient(styrene, NewQuantity("mass", 0.22, "kg"))}
	s.experiment.Process = []*Process{proc}

	err := s.project.CheckOrphans()
	c.Assert(err, check.FitsTypeOf, &OrphanedNodeError{})
	c.Check(err.(*OrphanedNodeError).Node, check.Equals, Node(styrene))
	c.Check(err, check.ErrorMatches, `orphaned Material node .*`)

	// registering via an inventory clears the error
	s.collection.Inventory = []*Inventory{NewInventory("bench", styrene)}
	c.Check(s.project.CheckOrphans(), check.IsNil)
}

func (s *orphanSuite) TestOrphanedComputation(c *check.C) {
	data := NewData("traj", "computation_trajectory")
	comp := NewComputation("sim", "MD")
	data.Computation = []*Computation{comp}
	s.experiment.Data = []*Data{data}

	err := s.project.CheckOrphans()
	c.Assert(err, check.FitsTypeOf, &OrphanedNodeError{})
	c.Check(err.(*OrphanedNodeError).Node, check.Equals, Node(comp))

	s.experiment.Computation = []*Computation{comp}
	c.Check(s.project.CheckOrphans(), check.IsNil)
}

func (s *orphanSuite) TestAddOrphanedNodes(c *check.C) {
	styrene := NewMaterial("styrene")
	data := NewData("traj", "computation_trajectory")
	comp := NewComputation("sim", "MD")
	comp.OutputData = []*Data{data}
	proc := NewProcess("polymerization", "multistep")
	proc.Ingredient = []*Ingredient{NewIngredient(styrene)}
	cproc := NewComputationProcess("reaction", "cross_linking")
	cproc.InputData = []*Data{data}
	prop := NewProperty("modulus_shear", "value", 5.1, "GPa")
	prop.Computation = []*Computation{comp}
	poly := NewMaterial("polystyrene")
	poly.Property = []*Property{prop}
	proc.Product = []*Material{poly}
	s.experiment.ComputationProcess = []*ComputationProcess{cproc}
	s.experiment.Process = []*Process{proc}

	c.Assert(s.project.CheckOrphans(), check.NotNil)
	err := AddOrphanedNodes(s.project, s.experiment, 10)
	c.Assert(err, check.IsNil)
	c.Check(s.project.CheckOrphans(), check.IsNil)
	c.Check(len(s.project.Material), check.Equals, 2)
	c.Check(s.experiment.Computation, check.HasLen, 1)
	c.Check(s.experiment.Data, check.HasLen, 1)
}

func (s *orphanSuite) TestAddOrphanedNodesDetachedExperiment(c *check.C) {
	other := NewExperiment("elsewhere")
	err := AddOrphanedNodes(s.project, other, 10)
	c.Check(err, check.ErrorMatches, `experiment "elsewhere" is not part of project "proj1"`)
}

func (s *orphanSuite) TestAddOrphanedNodesIterationLimit(c *check.C) {
	styrene := NewMaterial("styrene")
	proc := NewProcess("polymerization", "multistep")
	proc.Ingredient = []*Ingredient{NewIngredient(styrene)}
	comp := NewComputation("sim", "MD")
	proc.Condition = []*Condition{NewCondition("temperature", "value", 450, "K")}
	s.experiment.Process = []*Process{proc}
	s.experiment.Computation = []*Computation{comp}

	err := AddOrphanedNodes(s.project, s.experiment, 0)
	c.Check(err, check.ErrorMatches, `graph still has orphaned nodes after 0 repair iterations`)
}
