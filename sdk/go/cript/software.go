// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Software identifies a program used by computations, e.g.
// {Name: "LAMMPS", Version: "23Jun22"}.
type Software struct {
	PrimaryBase
	Version string `json:"version"`
	Source  string `json:"source,omitempty"`
}

func (s *Software) resourceName() string { return "software" }

// NewSoftware returns a Software node with the given name and version.
func NewSoftware(name, version string) *Software {
	s := &Software{Version: version}
	s.NodeBase = newNodeBase("Software")
	s.Name = name
	return s
}

// SoftwareConfiguration couples a Software node with the algorithms
// and settings used in a particular computation.
type SoftwareConfiguration struct {
	NodeBase
	Software  *Software    `json:"software,omitempty"`
	Algorithm []*Algorithm `json:"algorithm,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	Citation  []*Citation  `json:"citation,omitempty"`
}

// NewSoftwareConfiguration returns a SoftwareConfiguration for the
// given software.
func NewSoftwareConfiguration(software *Software) *SoftwareConfiguration {
	return &SoftwareConfiguration{NodeBase: newNodeBase("SoftwareConfiguration"), Software: software}
}

// Algorithm names a method applied by the software, with its tuning
// parameters. Key and Type come from the algorithm_key and
// algorithm_type vocabularies.
type Algorithm struct {
	NodeBase
	Key       string       `json:"key"`
	Type      string       `json:"type"`
	Parameter []*Parameter `json:"parameter,omitempty"`
	Citation  []*Citation  `json:"citation,omitempty"`
}

// NewAlgorithm returns an Algorithm subobject.
func NewAlgorithm(key, algorithmType string) *Algorithm {
	return &Algorithm{NodeBase: newNodeBase("Algorithm"), Key: key, Type: algorithmType}
}

// Parameter is a single named value configuring an algorithm, e.g.
// {Key: "update_frequency", Value: 1000, Unit: "1/ns"}.
type Parameter struct {
	NodeBase
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// NewParameter returns a Parameter subobject.
func NewParameter(key string, value float64, unit string) *Parameter {
	return &Parameter{NodeBase: newNodeBase("Parameter"), Key: key, Value: value, Unit: unit}
}
