// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"encoding/json"
	"strings"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&serializeSuite{})

type serializeSuite struct{}

func (s *serializeSuite) TestMarshalSimple(c *check.C) {
	q := NewQuantity("mass", 11.2, "kg")
	buf, err := MarshalNode(q)
	c.Assert(err, check.IsNil)
	var doc map[string]interface{}
	c.Assert(json.Unmarshal(buf, &doc), check.IsNil)
	c.Check(doc["node"], check.DeepEquals, []interface{}{"Quantity"})
	c.Check(doc["key"], check.Equals, "mass")
	c.Check(doc["value"], check.Equals, 11.2)
	c.Check(doc["unit"], check.Equals, "kg")
	c.Check(strings.HasPrefix(doc["uid"].(string), "_:"), check.Equals, true)
	// omitempty fields stay out of the document
	_, ok := doc["uncertainty"]
	c.Check(ok, check.Equals, false)
}

func (s *serializeSuite) TestMarshalCondensedSharedNode(c *check.C) {
	// A node reached twice is written in full once; the second
	// occurrence collapses to a uid reference.
	water := NewMaterial("water", NewIdentifier("smiles", "O"))
	proj := NewProject("solvents")
	proj.Material = []*Material{water}
	inv := NewInventory("bench", water)
	coll := NewCollection("phase1")
	coll.Inventory = []*Inventory{inv}
	proj.Collection = []*Collection{coll}

	buf, err := MarshalNode(proj)
	c.Assert(err, check.IsNil)
	c.Check(strings.Count(string(buf), `"name":"water"`), check.Equals, 1)
	c.Check(strings.Count(string(buf), water.UID), check.Equals, 2)
}

func (s *serializeSuite) TestMarshalCycle(c *check.C) {
	// material -> property -> data -> material back-edge must
	// terminate and collapse to a reference.
	poly := NewMaterial("polystyrene")
	data := NewData("sim", "computation_trajectory")
	data.Material = []*Material{poly}
	prop := NewProperty("modulus_shear", "value", 5.1, "GPa")
	prop.Data = []*Data{data}
	poly.Property = []*Property{prop}

	buf, err := MarshalNode(poly)
	c.Assert(err, check.IsNil)
	c.Check(strings.Count(string(buf), `"name":"polystyrene"`), check.Equals, 1)

	// Expanded mode collapses the back-edge too.
	buf, err = MarshalNodeExpanded(poly)
	c.Assert(err, check.IsNil)
	c.Check(strings.Count(string(buf), `"name":"polystyrene"`), check.Equals, 1)
}

func (s *serializeSuite) TestMarshalExpandedSharedNode(c *check.C) {
	// In expanded mode a shared (but acyclic) node is written in
	// full at every occurrence.
	water := NewMaterial("water")
	proj := NewProject("solvents")
	proj.Material = []*Material{water}
	inv := NewInventory("bench", water)
	coll := NewCollection("phase1")
	coll.Inventory = []*Inventory{inv}
	proj.Collection = []*Collection{coll}

	buf, err := MarshalNodeExpanded(proj)
	c.Assert(err, check.IsNil)
	c.Check(strings.Count(string(buf), `"name":"water"`), check.Equals, 2)
}

func (s *serializeSuite) TestRoundTrip(c *check.C) {
	sw := NewSoftware("LAMMPS", "23Jun22")
	cfg := NewSoftwareConfiguration(sw)
	alg := NewAlgorithm("energy_minimization", "initialization")
	alg.Parameter = []*Parameter{NewParameter("update_frequency", 1000, "1/ns")}
	cfg.Algorithm = []*Algorithm{alg}
	comp := NewComputation("equilibrate", "MD")
	comp.SoftwareConfiguration = []*SoftwareConfiguration{cfg}
	comp.Condition = []*Condition{NewCondition("temperature", "value", 450, "K")}

	buf, err := MarshalNode(comp)
	c.Assert(err, check.IsNil)
	n, err := LoadNode(buf)
	c.Assert(err, check.IsNil)
	got, ok := n.(*Computation)
	c.Assert(ok, check.Equals, true)
	c.Check(got.Name, check.Equals, "equilibrate")
	c.Check(got.Type, check.Equals, "MD")
	c.Assert(got.SoftwareConfiguration, check.HasLen, 1)
	c.Check(got.SoftwareConfiguration[0].Software.Name, check.Equals, "LAMMPS")
	c.Assert(got.SoftwareConfiguration[0].Algorithm, check.HasLen, 1)
	c.Check(got.SoftwareConfiguration[0].Algorithm[0].Parameter[0].Value, check.Equals, float64(1000))
	c.Check(got.Condition[0].Unit, check.Equals, "K")
}

func (s *serializeSuite) TestRoundTripSharedNode(c *check.C) {
	// Decoding condensed JSON restores pointer identity for
	// shared nodes.
	water := NewMaterial("water")
	proj := NewProject("solvents")
	proj.Material = []*Material{water}
	inv := NewInventory("bench", water)
	coll := NewCollection("phase1")
	coll.Inventory = []*Inventory{inv}
	proj.Collection = []*Collection{coll}

	buf, err := MarshalNode(proj)
	c.Assert(err, check.IsNil)
	n, err := LoadNode(buf)
	c.Assert(err, check.IsNil)
	got := n.(*Project)
	c.Assert(got.Material, check.HasLen, 1)
	c.Assert(got.Collection[0].Inventory[0].Material, check.HasLen, 1)
	c.Check(got.Material[0] == got.Collection[0].Inventory[0].Material[0], check.Equals, true)
	c.Check(got.Collection[0].Inventory[0].Material[0].Name, check.Equals, "water")
}

func (s *serializeSuite) TestNodeJSON(c *check.C) {
	f := NewFile("trajectory", "sim.traj", "data")
	str, err := NodeJSON(f)
	c.Assert(err, check.IsNil)
	c.Check(str, check.Matches, `\{.*"node":\["File"\].*\}`)
}

var _ = check.Suite(&deserializeSuite{})

type deserializeSuite struct{}

func (s *deserializeSuite) TestInvalidNodeField(c *check.C) {
	for _, trial := range []struct {
		data   string
		expect string
	}{
		{`not json`, `invalid node JSON: .*`},
		{`{"name":"x"}`, `invalid node JSON: missing "node" field`},
		{`{"node":"Project"}`, `invalid node JSON: "node" field is not a list`},
		{`{"node":[]}`, `invalid node JSON: "node" field must have exactly one entry, got 0`},
		{`{"node":["Project","Material"]}`, `invalid node JSON: "node" field must have exactly one entry, got 2`},
		{`{"node":[""]}`, `invalid node JSON: "node" field entry is not a non-empty string`},
		{`{"node":[42]}`, `invalid node JSON: "node" field entry is not a non-empty string`},
		{`{"node":["Blob"]}`, `invalid node JSON: unknown node type "Blob"`},
	} {
		c.Logf("%s", trial.data)
		n, err := LoadNode([]byte(trial.data))
		c.Check(n, check.IsNil)
		c.Check(err, check.ErrorMatches, trial.expect)
	}
}

func (s *deserializeSuite) TestUnresolvedUID(c *check.C) {
	data := `{"node":["Project"],"uid":"_:p1","name":"x","material":[{"uid":"_:nowhere"}]}`
	n, err := LoadNode([]byte(data))
	c.Check(n, check.IsNil)
	c.Assert(err, check.FitsTypeOf, &UnresolvedUIDError{})
	c.Check(err.(*UnresolvedUIDError).UID, check.Equals, "_:nowhere")
}

func (s *deserializeSuite) TestKindMismatch(c *check.C) {
	// Declared kind must match the type of the field it appears
	// in.
	data := `{"node":["Project"],"uid":"_:p1","material":[{"node":["Process"],"uid":"_:m1","name":"oops"}]}`
	n, err := LoadNode([]byte(data))
	c.Check(n, check.IsNil)
	c.Check(err, check.ErrorMatches, `invalid node JSON: node "Material" declared as "Process"`)
}

func (s *deserializeSuite) TestStubTypeMismatch(c *check.C) {
	// A uid reference resolving to a node of the wrong type for
	// the referencing field is an error.
	data := `{"node":["Project"],"uid":"_:p1",` +
		`"collection":[{"node":["Collection"],"uid":"_:c1","experiment":[{"node":["Experiment"],"uid":"_:e1"}]}],` +
		`"material":[{"uid":"_:e1"}]}`
	n, err := LoadNode([]byte(data))
	c.Check(n, check.IsNil)
	c.Check(err, check.ErrorMatches, `.*"_:e1".*type Experiment where Material expected.*`)
}
