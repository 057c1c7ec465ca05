// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Material is a substance (or mixture) studied by a project, described
// by identifiers and measured or computed properties.
type Material struct {
	PrimaryBase
	Identifier              []*Identifier            `json:"identifier,omitempty"`
	Property                []*Property              `json:"property,omitempty"`
	Component               []*Material              `json:"component,omitempty"`
	Keyword                 []string                 `json:"keyword,omitempty"`
	ComputationalForcefield *ComputationalForcefield `json:"computational_forcefield,omitempty"`
}

func (m *Material) resourceName() string { return "material" }

// NewMaterial returns a Material with the given name and identifiers.
func NewMaterial(name string, identifier ...*Identifier) *Material {
	m := &Material{Identifier: identifier}
	m.NodeBase = newNodeBase("Material")
	m.Name = name
	return m
}

// MaterialList is a page of Material search results.
type MaterialList struct {
	Items          []*Material `json:"items"`
	ItemsAvailable int         `json:"items_available"`
	Offset         int         `json:"offset"`
	Limit          int         `json:"limit"`
}

// Identifier names a material in some identifier scheme, e.g.
// {Key: "bigsmiles", Value: "{[][$]CC(C)[$][]}"}. Keys come from the
// material_identifier_key vocabulary.
type Identifier struct {
	NodeBase
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewIdentifier returns an Identifier subobject.
func NewIdentifier(key, value string) *Identifier {
	return &Identifier{NodeBase: newNodeBase("Identifier"), Key: key, Value: value}
}

// ComputationalForcefield describes the forcefield used to model a
// material in computations.
type ComputationalForcefield struct {
	NodeBase
	Key             string      `json:"key"`
	BuildingBlock   string      `json:"building_block,omitempty"`
	ImplicitSolvent string      `json:"implicit_solvent,omitempty"`
	Source          string      `json:"source,omitempty"`
	Description     string      `json:"description,omitempty"`
	Data            []*Data     `json:"data,omitempty"`
	Citation        []*Citation `json:"citation,omitempty"`
}

// NewComputationalForcefield returns a ComputationalForcefield
// subobject with the given vocabulary key and building block.
func NewComputationalForcefield(key, buildingBlock string) *ComputationalForcefield {
	return &ComputationalForcefield{
		NodeBase:      newNodeBase("ComputationalForcefield"),
		Key:           key,
		BuildingBlock: buildingBlock,
	}
}
