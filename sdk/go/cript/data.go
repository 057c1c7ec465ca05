// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Data groups the files that together represent one dataset, e.g. a
// simulation trajectory with its energy log.
type Data struct {
	PrimaryBase
	Type               string                `json:"type"`
	File               []*File               `json:"file,omitempty"`
	Computation        []*Computation        `json:"computation,omitempty"`
	ComputationProcess []*ComputationProcess `json:"computation_process,omitempty"`
	Material           []*Material           `json:"material,omitempty"`
	Process            []*Process            `json:"process,omitempty"`
	Citation           []*Citation           `json:"citation,omitempty"`
}

func (d *Data) resourceName() string { return "data" }

// NewData returns a Data node with the given name, type, and files.
// Types come from the data_type vocabulary.
func NewData(name, dataType string, file ...*File) *Data {
	d := &Data{Type: dataType, File: file}
	d.NodeBase = newNodeBase("Data")
	d.Name = name
	return d
}
