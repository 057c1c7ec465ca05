// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// A Node is any record in the CRIPT data graph: a primary node
// (Project, Experiment, ...), a subobject (Algorithm, Property, ...),
// or a supporting node (User).
type Node interface {
	base() *NodeBase
}

// NodeBase carries the fields common to every node. The "node" field
// holds the node's type name, e.g. ["Computation"].
type NodeBase struct {
	NodeList []string `json:"node"`
	UID      string   `json:"uid,omitempty"`
	UUID     string   `json:"uuid,omitempty"`
}

func (nb *NodeBase) base() *NodeBase { return nb }

// Kind returns the node's type name, or "" for a UID-only reference.
func (nb *NodeBase) Kind() string {
	if len(nb.NodeList) == 0 {
		return ""
	}
	return nb.NodeList[0]
}

// PrimaryBase carries the fields shared by all primary nodes. URL,
// ModelVersion, CreatedBy, and UpdatedBy are assigned by the service.
type PrimaryBase struct {
	NodeBase
	URL          string `json:"url,omitempty"`
	Name         string `json:"name,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Public       bool   `json:"public,omitempty"`
	Locked       bool   `json:"locked,omitempty"`
	ModelVersion string `json:"model_version,omitempty"`
	CreatedBy    *User  `json:"created_by,omitempty"`
	UpdatedBy    *User  `json:"updated_by,omitempty"`
}

func (pb *PrimaryBase) primaryBase() *PrimaryBase { return pb }

// NodeUUID returns the node's uuid. It is a convenience for callers
// holding a Node interface value, where the embedded UUID field is
// not reachable.
func NodeUUID(n Node) string {
	return n.base().UUID
}

// NodeKind returns the node's type name, e.g. "Project".
func NodeKind(n Node) string {
	return n.base().Kind()
}

// NewUID returns a fresh blank-node identifier ("_:" + uuid4).
func NewUID() string {
	return "_:" + uuid.NewString()
}

// newNodeBase initializes the common fields for a node of the given
// kind, with a fresh uid/uuid pair.
func newNodeBase(kind string) NodeBase {
	id := uuid.NewString()
	return NodeBase{
		NodeList: []string{kind},
		UID:      "_:" + id,
		UUID:     id,
	}
}

// nodeKind returns the type name used in the "node" field for a
// concrete node value, which is the Go type name by construction.
func nodeKind(n Node) string {
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// isStub reports whether n is a UID-only reference to a node defined
// elsewhere in the same document.
func isStub(n Node) bool {
	nb := n.base()
	return len(nb.NodeList) == 0 && nb.UID != ""
}

var nodeIfaceType = reflect.TypeOf((*Node)(nil)).Elem()

type structField struct {
	index     []int
	jsonName  string
	omitEmpty bool
	isNode    bool // field type is a Node pointer
	isNodes   bool // field type is a slice of Node pointers
}

var fieldCache sync.Map // reflect.Type -> []structField

// nodeFields returns the JSON-visible fields of a node struct type,
// flattening embedded structs the way encoding/json does.
func nodeFields(t reflect.Type) []structField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]structField)
	}
	var fields []structField
	var walk func(t reflect.Type, index []int)
	walk = func(t reflect.Type, index []int) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			idx := append(append([]int(nil), index...), i)
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				walk(f.Type, idx)
				continue
			}
			if f.PkgPath != "" {
				continue
			}
			tag := f.Tag.Get("json")
			if tag == "-" {
				continue
			}
			name, opts, _ := strings.Cut(tag, ",")
			if name == "" {
				name = f.Name
			}
			sf := structField{
				index:     idx,
				jsonName:  name,
				omitEmpty: strings.Contains(opts, "omitempty"),
			}
			switch {
			case f.Type.Kind() == reflect.Ptr && f.Type.Implements(nodeIfaceType):
				sf.isNode = true
			case f.Type.Kind() == reflect.Slice && f.Type.Elem().Implements(nodeIfaceType):
				sf.isNodes = true
			}
			fields = append(fields, sf)
		}
	}
	walk(t, nil)
	fieldCache.Store(t, fields)
	return fields
}

// ChildNodes returns the direct child nodes of n, in field order.
func ChildNodes(n Node) []Node {
	v := reflect.ValueOf(n)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	var children []Node
	for _, f := range nodeFields(v.Type()) {
		fv := v.FieldByIndex(f.index)
		switch {
		case f.isNode:
			if !fv.IsNil() {
				children = append(children, fv.Interface().(Node))
			}
		case f.isNodes:
			for i := 0; i < fv.Len(); i++ {
				if ev := fv.Index(i); !ev.IsNil() {
					children = append(children, ev.Interface().(Node))
				}
			}
		}
	}
	return children
}

// Walk calls visit for n and every node reachable from it, visiting
// each node once even if the graph has shared nodes or cycles.
func Walk(n Node, visit func(Node)) {
	seen := map[Node]bool{}
	var walk func(Node)
	walk = func(n Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		visit(n)
		for _, child := range ChildNodes(n) {
			walk(child)
		}
	}
	walk(n)
}
