// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Process is a physical procedure performed in an experiment:
// ingredients go in, product materials come out.
type Process struct {
	PrimaryBase
	Type                string        `json:"type"`
	Description         string        `json:"description,omitempty"`
	Ingredient          []*Ingredient `json:"ingredient,omitempty"`
	Product             []*Material   `json:"product,omitempty"`
	Equipment           []*Equipment  `json:"equipment,omitempty"`
	Condition           []*Condition  `json:"condition,omitempty"`
	Property            []*Property   `json:"property,omitempty"`
	PrerequisiteProcess []*Process    `json:"prerequisite_process,omitempty"`
	Keyword             []string      `json:"keyword,omitempty"`
	Citation            []*Citation   `json:"citation,omitempty"`
}

func (p *Process) resourceName() string { return "process" }

// NewProcess returns a Process with the given name and type. Types
// come from the process_type vocabulary.
func NewProcess(name, processType string) *Process {
	p := &Process{Type: processType}
	p.NodeBase = newNodeBase("Process")
	p.Name = name
	return p
}

// Ingredient ties a material and the quantities of it used by a
// process.
type Ingredient struct {
	NodeBase
	Material *Material   `json:"material,omitempty"`
	Quantity []*Quantity `json:"quantity,omitempty"`
	Keyword  string      `json:"keyword,omitempty"`
}

// NewIngredient returns an Ingredient subobject.
func NewIngredient(material *Material, quantity ...*Quantity) *Ingredient {
	return &Ingredient{NodeBase: newNodeBase("Ingredient"), Material: material, Quantity: quantity}
}

// Quantity is an amount with unit and optional uncertainty, e.g.
// {Key: "mass", Value: 1.23, Unit: "kg"}.
type Quantity struct {
	NodeBase
	Key             string  `json:"key"`
	Value           float64 `json:"value"`
	Unit            string  `json:"unit,omitempty"`
	Uncertainty     float64 `json:"uncertainty,omitempty"`
	UncertaintyType string  `json:"uncertainty_type,omitempty"`
}

// NewQuantity returns a Quantity subobject.
func NewQuantity(key string, value float64, unit string) *Quantity {
	return &Quantity{NodeBase: newNodeBase("Quantity"), Key: key, Value: value, Unit: unit}
}

// Equipment is an instrument or vessel used by a process.
type Equipment struct {
	NodeBase
	Key         string       `json:"key"`
	Description string       `json:"description,omitempty"`
	Condition   []*Condition `json:"condition,omitempty"`
	Citation    []*Citation  `json:"citation,omitempty"`
}

// NewEquipment returns an Equipment subobject with the given
// vocabulary key.
func NewEquipment(key string) *Equipment {
	return &Equipment{NodeBase: newNodeBase("Equipment"), Key: key}
}
