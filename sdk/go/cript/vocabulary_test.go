// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"context"
	"net/http"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&vocabularySuite{})

type vocabularySuite struct {
	voc Vocabulary
}

func (s *vocabularySuite) SetUpTest(c *check.C) {
	s.voc = Vocabulary{
		Category: "condition_key",
		Strict:   true,
		Entries: []VocabularyEntry{
			{Name: "temperature", AltNames: []string{"temp"}, Description: "temperature of the system"},
			{Name: "pressure", AltNames: []string{"p"}},
			{Name: "mixing_rate"},
		},
	}
}

func (s *vocabularySuite) TestCheckPermittedValue(c *check.C) {
	c.Check(s.voc.Check("temperature"), check.IsNil)
	c.Check(s.voc.Check("mixing_rate"), check.IsNil)
}

func (s *vocabularySuite) TestCheckAlias(c *check.C) {
	err := s.voc.Check("temp")
	c.Assert(err, check.FitsTypeOf, &InvalidVocabularyError{})
	c.Check(err.(*InvalidVocabularyError).Canonical, check.Equals, "temperature")
	c.Check(err, check.ErrorMatches, `vocabulary value "temp" for category "condition_key" is an alias, must be provided as "temperature"`)

	// case variants of a permitted value count as aliases too
	err = s.voc.Check("Pressure")
	c.Assert(err, check.FitsTypeOf, &InvalidVocabularyError{})
	c.Check(err.(*InvalidVocabularyError).Canonical, check.Equals, "pressure")
}

func (s *vocabularySuite) TestCheckUnknownValue(c *check.C) {
	err := s.voc.Check("entropy")
	c.Assert(err, check.FitsTypeOf, &InvalidVocabularyError{})
	c.Check(err.(*InvalidVocabularyError).Canonical, check.Equals, "")

	// non-strict categories accept unknown values
	s.voc.Strict = false
	c.Check(s.voc.Check("entropy"), check.IsNil)
	// ...but still report aliases
	c.Check(s.voc.Check("temp"), check.NotNil)
}

func (s *vocabularySuite) TestCheckNilVocabulary(c *check.C) {
	var voc *Vocabulary
	c.Check(voc.Check("anything"), check.IsNil)
}

func (s *vocabularySuite) TestValidateDefinition(c *check.C) {
	c.Check(s.voc.validate(), check.IsNil)

	dup := s.voc
	dup.Entries = append([]VocabularyEntry{{Name: "Temperature"}}, s.voc.Entries...)
	c.Check(dup.validate(), check.ErrorMatches, `duplicate vocabulary entry .*`)

	collide := s.voc
	collide.Entries = append([]VocabularyEntry{{Name: "fugacity", AltNames: []string{"TEMP"}}}, s.voc.Entries...)
	c.Check(collide.validate(), check.ErrorMatches, `alternative name "temp" of "temperature" already used by "fugacity" .*`)
}

func (s *vocabularySuite) TestFetchVocabulary(c *check.C) {
	stub := &stubTransport{
		Responses: map[string]string{
			"/api/v1/cv/condition_key": `{"strict":true,"entries":[{"name":"temperature","alt_names":["temp"]}]}`,
		},
	}
	client := &Client{
		Client:    &http.Client{Transport: stub},
		APIHost:   "cript.example.com",
		AuthToken: "xyzzy",
	}
	voc, err := client.Vocabulary(context.Background(), "condition_key")
	c.Assert(err, check.IsNil)
	c.Check(voc.Category, check.Equals, "condition_key")
	c.Check(voc.Strict, check.Equals, true)
	c.Check(voc.Check("temperature"), check.IsNil)

	// second fetch is served from the cache
	voc2, err := client.Vocabulary(context.Background(), "condition_key")
	c.Assert(err, check.IsNil)
	c.Check(voc2, check.Equals, voc)
	c.Check(stub.Requests, check.HasLen, 1)
}

func (s *vocabularySuite) TestFetchUnknownCategory(c *check.C) {
	client := &Client{APIHost: "cript.example.com"}
	_, err := client.Vocabulary(context.Background(), "flavor")
	c.Assert(err, check.FitsTypeOf, &InvalidVocabularyCategoryError{})
	c.Check(err, check.ErrorMatches, `vocabulary category "flavor" does not exist, valid categories are .*condition_key.*`)
}
