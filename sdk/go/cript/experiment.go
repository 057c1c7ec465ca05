// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Experiment holds the processes, computations, and resulting data of
// one experimental effort within a collection.
type Experiment struct {
	PrimaryBase
	Process            []*Process            `json:"process,omitempty"`
	Computation        []*Computation        `json:"computation,omitempty"`
	ComputationProcess []*ComputationProcess `json:"computation_process,omitempty"`
	Data               []*Data               `json:"data,omitempty"`
	Funding            []string              `json:"funding,omitempty"`
	Citation           []*Citation           `json:"citation,omitempty"`
}

func (e *Experiment) resourceName() string { return "experiment" }

// NewExperiment returns an Experiment with the given name and a fresh
// uid/uuid pair.
func NewExperiment(name string) *Experiment {
	e := &Experiment{}
	e.NodeBase = newNodeBase("Experiment")
	e.Name = name
	return e
}
