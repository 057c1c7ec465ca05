// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Collection groups related experiments and inventories within a
// project, e.g. all runs belonging to one publication.
type Collection struct {
	PrimaryBase
	Experiment []*Experiment `json:"experiment,omitempty"`
	Inventory  []*Inventory  `json:"inventory,omitempty"`
	DOI        string        `json:"doi,omitempty"`
	Citation   []*Citation   `json:"citation,omitempty"`
}

func (c *Collection) resourceName() string { return "collection" }

// NewCollection returns a Collection with the given name and a fresh
// uid/uuid pair.
func NewCollection(name string) *Collection {
	c := &Collection{}
	c.NodeBase = newNodeBase("Collection")
	c.Name = name
	return c
}

// CollectionList is a page of Collection search results.
type CollectionList struct {
	Items          []*Collection `json:"items"`
	ItemsAvailable int           `json:"items_available"`
	Offset         int           `json:"offset"`
	Limit          int           `json:"limit"`
}
