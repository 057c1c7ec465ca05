// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"context"
	"io"
	"net/http"
	"strings"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&saveSuite{})

type saveSuite struct {
	stub   *stubTransport
	client *Client
}

func (s *saveSuite) SetUpTest(c *check.C) {
	s.stub = &stubTransport{
		Responses: map[string]string{
			"/api/v1/schema": `{"version":"1.2","node_types":{
				"Project":{"required":["name"],"fields":{"name":"string"}},
				"Collection":{"required":["name"],"fields":{"name":"string"}},
				"Material":{"required":["name"],"fields":{"name":"string"}}}}`,
		},
	}
	s.client = &Client{
		Client:    &http.Client{Transport: s.stub},
		APIHost:   "cript.example.com",
		AuthToken: "xyzzy",
	}
}

func (s *saveSuite) TestSaveNewProject(c *check.C) {
	proj := NewProject("adhesives")
	proj.Collection = []*Collection{NewCollection("screening")}
	s.stub.Responses["/api/v1/project"] = `{"node":["Project"],"uuid":"` + proj.UUID + `",` +
		`"url":"https://cript.example.com/api/v1/project/` + proj.UUID + `","name":"adhesives"}`

	err := s.client.Save(context.Background(), proj)
	c.Assert(err, check.IsNil)
	c.Check(proj.URL, check.Not(check.Equals), "")

	req := s.stub.Requests[len(s.stub.Requests)-1]
	c.Check(req.Method, check.Equals, "POST")
	c.Check(req.Header.Get("Content-Type"), check.Equals, "application/json")
	body, err := io.ReadAll(req.Body)
	c.Assert(err, check.IsNil)
	c.Check(strings.Contains(string(body), `"name":"adhesives"`), check.Equals, true)
}

func (s *saveSuite) TestSaveExistingProject(c *check.C) {
	proj := NewProject("adhesives")
	proj.URL = "https://cript.example.com/api/v1/project/" + proj.UUID
	s.stub.Responses["/api/v1/project/"+proj.UUID] = `{"node":["Project"],"uuid":"` + proj.UUID + `","name":"adhesives"}`

	err := s.client.Save(context.Background(), proj)
	c.Assert(err, check.IsNil)
	req := s.stub.Requests[len(s.stub.Requests)-1]
	c.Check(req.Method, check.Equals, "PATCH")
	c.Check(req.URL.Path, check.Equals, "/api/v1/project/"+proj.UUID)
}

func (s *saveSuite) TestSaveInvalidGraph(c *check.C) {
	proj := NewProject("adhesives")
	// material reachable only through a process ingredient
	styrene := NewMaterial("styrene")
	proc := NewProcess("polymerization", "multistep")
	proc.Ingredient = []*Ingredient{NewIngredient(styrene)}
	exp := NewExperiment("exp1")
	exp.Process = []*Process{proc}
	coll := NewCollection("screening")
	coll.Experiment = []*Experiment{exp}
	proj.Collection = []*Collection{coll}

	err := s.client.Save(context.Background(), proj)
	c.Assert(err, check.FitsTypeOf, &OrphanedNodeError{})
	// nothing was sent except the schema fetch
	c.Check(s.stub.Requests, check.HasLen, 1)
}

func (s *saveSuite) TestSaveSubobjectRejected(c *check.C) {
	err := s.client.Save(context.Background(), NewQuantity("mass", 1, "kg"))
	c.Check(err, check.ErrorMatches, `Quantity nodes cannot be saved directly, save the primary node containing them`)
}

func (s *saveSuite) TestDelete(c *check.C) {
	proj := NewProject("adhesives")
	s.stub.Responses["/api/v1/project/"+proj.UUID] = `{}`
	err := s.client.Delete(context.Background(), proj)
	c.Assert(err, check.IsNil)
	req := s.stub.Requests[len(s.stub.Requests)-1]
	c.Check(req.Method, check.Equals, "DELETE")
}
