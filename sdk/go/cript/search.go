// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// FindChildren returns every node in the graph rooted at root (root
// included) whose attributes match all criteria in match. Criterion
// values are compared against the node's JSON representation:
//
//	FindChildren(n, map[string]interface{}{"node": "Algorithm"}, -1)
//	    finds all Algorithm nodes.
//	FindChildren(n, map[string]interface{}{"parameter": map[string]interface{}{"key": "update_frequency"}}, -1)
//	    finds nodes having a parameter child with that key.
//
// For list-valued attributes a criterion matches if the wanted value
// is an element of the list; a list-valued criterion requires all its
// elements to match (AND). depth limits recursion into children; -1
// means unlimited. Shared nodes appear once in the result.
func FindChildren(root Node, match map[string]interface{}, depth int) []Node {
	var found []Node
	seen := map[Node]bool{}
	var search func(n Node, depth int)
	search = func(n Node, depth int) {
		if seen[n] {
			return
		}
		seen[n] = true
		if nodeMatches(n, match) {
			found = append(found, n)
		}
		if depth == 0 {
			return
		}
		for _, child := range ChildNodes(n) {
			search(child, depth-1)
		}
	}
	search(root, depth)
	return found
}

func nodeMatches(n Node, match map[string]interface{}) bool {
	for key, want := range match {
		if !attrPresent(n, key, want) {
			return false
		}
	}
	return true
}

// attrPresent checks one criterion against one node. want may be a
// scalar, a list of scalars/criteria (all must match), or a nested
// criteria map (matched against child nodes of that attribute).
func attrPresent(n Node, key string, want interface{}) bool {
	fv, ok := fieldByJSONName(n, key)
	if !ok {
		return false
	}
	var attr []reflect.Value
	if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < fv.Len(); i++ {
			attr = append(attr, fv.Index(i))
		}
	} else {
		attr = []reflect.Value{fv}
	}

	wants, ok := want.([]interface{})
	if !ok {
		wants = []interface{}{want}
	}
	// All wanted values must be found (AND); each may match any
	// element of the attribute (OR).
	for _, w := range wants {
		if !valueFound(attr, w) {
			return false
		}
	}
	return true
}

func valueFound(attr []reflect.Value, want interface{}) bool {
	for _, av := range attr {
		if criteria, ok := want.(map[string]interface{}); ok {
			if child, ok := av.Interface().(Node); ok && child != nil {
				// Match the child node itself, without
				// recursing into its own children.
				if len(FindChildren(child, criteria, 0)) > 0 {
					return true
				}
			}
			continue
		}
		if jsonEqual(av.Interface(), want) {
			return true
		}
	}
	return false
}

// jsonEqual compares two values by their JSON encodings, so that e.g.
// int 5 in a criterion equals float64 5 in a node field.
func jsonEqual(a, b interface{}) bool {
	ja, erra := json.Marshal(a)
	jb, errb := json.Marshal(b)
	return erra == nil && errb == nil && bytes.Equal(ja, jb)
}

func fieldByJSONName(n Node, name string) (reflect.Value, bool) {
	v := reflect.ValueOf(n)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for _, f := range nodeFields(v.Type()) {
		if f.jsonName == name {
			return v.FieldByIndex(f.index), true
		}
	}
	return reflect.Value{}, false
}

// RemoveChild detaches the first occurrence of child (by identity)
// from one of parent's node fields, and reports whether anything was
// removed.
func RemoveChild(parent, child Node) bool {
	v := reflect.ValueOf(parent)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for _, f := range nodeFields(v.Type()) {
		fv := v.FieldByIndex(f.index)
		switch {
		case f.isNode:
			if !fv.IsNil() && fv.Interface().(Node) == child {
				fv.Set(reflect.Zero(fv.Type()))
				return true
			}
		case f.isNodes:
			for i := 0; i < fv.Len(); i++ {
				if fv.Index(i).Interface().(Node) == child {
					rest := reflect.AppendSlice(fv.Slice(0, i), fv.Slice(i+1, fv.Len()))
					fv.Set(rest)
					return true
				}
			}
		}
	}
	return false
}
