// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// MarshalNode encodes a node graph as condensed JSON: the first
// occurrence of each node is written in full, and every later
// occurrence -- including cycle back-edges -- collapses to a
// {"uid": "_:..."} reference. This is the wire format for Save.
func MarshalNode(n Node) ([]byte, error) {
	enc := &graphEncoder{seen: map[string]bool{}}
	v, err := enc.encode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// MarshalNodeExpanded encodes a node graph with every node written in
// full at each occurrence. Only cycle back-edges collapse to uid
// references, so the output can be decoded without a shared uid
// table as long as the graph is acyclic.
func MarshalNodeExpanded(n Node) ([]byte, error) {
	enc := &graphEncoder{seen: map[string]bool{}, expand: true}
	v, err := enc.encode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

type graphEncoder struct {
	// seen tracks emitted uids. In condensed mode a uid stays set
	// once emitted; in expanded mode it is set only while the node
	// is on the current encoding path.
	seen   map[string]bool
	expand bool
}

func (enc *graphEncoder) encode(n Node) (interface{}, error) {
	nb := n.base()
	if isStub(n) {
		return map[string]interface{}{"uid": nb.UID}, nil
	}
	if nb.UID != "" {
		if enc.seen[nb.UID] {
			return map[string]interface{}{"uid": nb.UID}, nil
		}
		enc.seen[nb.UID] = true
		if enc.expand {
			defer delete(enc.seen, nb.UID)
		}
	}

	v := reflect.ValueOf(n)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	out := map[string]interface{}{}
	for _, f := range nodeFields(v.Type()) {
		fv := v.FieldByIndex(f.index)
		switch {
		case f.isNode:
			if fv.IsNil() {
				continue
			}
			child, err := enc.encode(fv.Interface().(Node))
			if err != nil {
				return nil, err
			}
			out[f.jsonName] = child
		case f.isNodes:
			if fv.Len() == 0 {
				continue
			}
			children := make([]interface{}, 0, fv.Len())
			for i := 0; i < fv.Len(); i++ {
				ev := fv.Index(i)
				if ev.IsNil() {
					continue
				}
				child, err := enc.encode(ev.Interface().(Node))
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
			out[f.jsonName] = children
		default:
			if f.omitEmpty && fv.IsZero() {
				continue
			}
			out[f.jsonName] = fv.Interface()
		}
	}
	return out, nil
}

// NodeJSON returns the condensed JSON of a node as a string, the
// conventional representation for logging and tests.
func NodeJSON(n Node) (string, error) {
	buf, err := MarshalNode(n)
	if err != nil {
		return "", fmt.Errorf("serializing %s node: %w", nodeKind(n), err)
	}
	return string(buf), nil
}
