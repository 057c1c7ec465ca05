// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Property is a measured or computed characteristic of a material or
// process, e.g. {Key: "modulus_shear", Type: "value", Value: 5,
// Unit: "GPa"}.
type Property struct {
	NodeBase
	Key             string         `json:"key"`
	Type            string         `json:"type"`
	Value           float64        `json:"value"`
	Unit            string         `json:"unit,omitempty"`
	Uncertainty     float64        `json:"uncertainty,omitempty"`
	UncertaintyType string         `json:"uncertainty_type,omitempty"`
	Method          string         `json:"method,omitempty"`
	Condition       []*Condition   `json:"condition,omitempty"`
	Data            []*Data        `json:"data,omitempty"`
	Computation     []*Computation `json:"computation,omitempty"`
	Citation        []*Citation    `json:"citation,omitempty"`
}

// NewProperty returns a Property subobject. Keys come from the
// property_key vocabularies.
func NewProperty(key, propertyType string, value float64, unit string) *Property {
	return &Property{NodeBase: newNodeBase("Property"), Key: key, Type: propertyType, Value: value, Unit: unit}
}

// Condition is an environmental variable under which a measurement or
// computation was done, e.g. {Key: "temperature", Value: 450,
// Unit: "K"}.
type Condition struct {
	NodeBase
	Key        string  `json:"key"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit,omitempty"`
	Descriptor string  `json:"descriptor,omitempty"`
	Data       []*Data `json:"data,omitempty"`
}

// NewCondition returns a Condition subobject.
func NewCondition(key, conditionType string, value float64, unit string) *Condition {
	return &Condition{NodeBase: newNodeBase("Condition"), Key: key, Type: conditionType, Value: value, Unit: unit}
}
