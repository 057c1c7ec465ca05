// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// File references a single stored file. Source is a local path or URL
// when the node is built; after upload, ObjectName and Checksum
// identify the stored copy.
type File struct {
	PrimaryBase
	Source         string `json:"source"`
	Type           string `json:"type"`
	Extension      string `json:"extension,omitempty"`
	DataDictionary string `json:"data_dictionary,omitempty"`
	ObjectName     string `json:"object_name,omitempty"`
	Checksum       string `json:"checksum,omitempty"`
}

func (f *File) resourceName() string { return "file" }

// NewFile returns a File node for the given source path or URL. Types
// come from the file_type vocabulary ("calibration", "data",
// "computation_config", ...).
func NewFile(name, source, fileType string) *File {
	f := &File{Source: source, Type: fileType}
	f.NodeBase = newNodeBase("File")
	f.Name = name
	return f
}
