// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Inventory lists materials available to the experiments of a
// collection.
type Inventory struct {
	PrimaryBase
	Material []*Material `json:"material,omitempty"`
}

func (i *Inventory) resourceName() string { return "inventory" }

// NewInventory returns an Inventory with the given name and materials.
func NewInventory(name string, material ...*Material) *Inventory {
	i := &Inventory{Material: material}
	i.NodeBase = newNodeBase("Inventory")
	i.Name = name
	return i
}
