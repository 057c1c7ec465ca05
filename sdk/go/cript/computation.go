// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Computation is an in-silico procedure: a simulation or analysis
// that transforms input data into output data.
type Computation struct {
	PrimaryBase
	Type                    string                   `json:"type"`
	InputData               []*Data                  `json:"input_data,omitempty"`
	OutputData              []*Data                  `json:"output_data,omitempty"`
	SoftwareConfiguration   []*SoftwareConfiguration `json:"software_configuration,omitempty"`
	Condition               []*Condition             `json:"condition,omitempty"`
	PrerequisiteComputation *Computation             `json:"prerequisite_computation,omitempty"`
	Citation                []*Citation              `json:"citation,omitempty"`
}

func (c *Computation) resourceName() string { return "computation" }

// NewComputation returns a Computation with the given name and type.
// Types come from the computation_type vocabulary.
func NewComputation(name, computationType string) *Computation {
	c := &Computation{Type: computationType}
	c.NodeBase = newNodeBase("Computation")
	c.Name = name
	return c
}

// ComputationProcess is a computation that additionally consumes
// ingredients, e.g. a simulated reaction.
type ComputationProcess struct {
	PrimaryBase
	Type                  string                   `json:"type"`
	InputData             []*Data                  `json:"input_data,omitempty"`
	OutputData            []*Data                  `json:"output_data,omitempty"`
	Ingredient            []*Ingredient            `json:"ingredient,omitempty"`
	SoftwareConfiguration []*SoftwareConfiguration `json:"software_configuration,omitempty"`
	Condition             []*Condition             `json:"condition,omitempty"`
	Property              []*Property              `json:"property,omitempty"`
	Citation              []*Citation              `json:"citation,omitempty"`
}

func (c *ComputationProcess) resourceName() string { return "computation_process" }

// NewComputationProcess returns a ComputationProcess with the given
// name and type.
func NewComputationProcess(name, processType string) *ComputationProcess {
	c := &ComputationProcess{Type: processType}
	c.NodeBase = newNodeBase("ComputationProcess")
	c.Name = name
	return c
}
