// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Project is the root of a data graph: a research effort with its
// collections and materials.
type Project struct {
	PrimaryBase
	Collection []*Collection `json:"collection,omitempty"`
	Material   []*Material   `json:"material,omitempty"`
	Member     []*User       `json:"member,omitempty"`
	Admin      []*User       `json:"admin,omitempty"`
}

func (p *Project) resourceName() string { return "project" }

// NewProject returns a Project with the given name and a fresh
// uid/uuid pair.
func NewProject(name string) *Project {
	p := &Project{}
	p.NodeBase = newNodeBase("Project")
	p.Name = name
	return p
}

// ProjectList is a page of Project search results.
type ProjectList struct {
	Items          []*Project `json:"items"`
	ItemsAvailable int        `json:"items_available"`
	Offset         int        `json:"offset"`
	Limit          int        `json:"limit"`
}
