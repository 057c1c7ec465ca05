// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// JSONNodeError indicates node JSON whose "node" field or structure
// does not fit the data model.
type JSONNodeError struct {
	Reason string
}

func (e *JSONNodeError) Error() string {
	return "invalid node JSON: " + e.Reason
}

// UnresolvedUIDError indicates a {"uid": ...} reference with no full
// node definition in the same document.
type UnresolvedUIDError struct {
	UID string
}

func (e *UnresolvedUIDError) Error() string {
	return fmt.Sprintf("node reference %q not defined in document", e.UID)
}

var nodeFactories = map[string]func() Node{
	"Project":                 func() Node { return &Project{} },
	"Collection":              func() Node { return &Collection{} },
	"Experiment":              func() Node { return &Experiment{} },
	"Inventory":               func() Node { return &Inventory{} },
	"Material":                func() Node { return &Material{} },
	"Process":                 func() Node { return &Process{} },
	"Computation":             func() Node { return &Computation{} },
	"ComputationProcess":      func() Node { return &ComputationProcess{} },
	"Data":                    func() Node { return &Data{} },
	"File":                    func() Node { return &File{} },
	"Reference":               func() Node { return &Reference{} },
	"Software":                func() Node { return &Software{} },
	"SoftwareConfiguration":   func() Node { return &SoftwareConfiguration{} },
	"Algorithm":               func() Node { return &Algorithm{} },
	"Parameter":               func() Node { return &Parameter{} },
	"Condition":               func() Node { return &Condition{} },
	"Property":                func() Node { return &Property{} },
	"Identifier":              func() Node { return &Identifier{} },
	"Citation":                func() Node { return &Citation{} },
	"Quantity":                func() Node { return &Quantity{} },
	"Ingredient":              func() Node { return &Ingredient{} },
	"Equipment":               func() Node { return &Equipment{} },
	"ComputationalForcefield": func() Node { return &ComputationalForcefield{} },
	"User":                    func() Node { return &User{} },
	"Group":                   func() Node { return &Group{} },
}

// kindFromRaw extracts and checks the "node" field of a JSON object.
func kindFromRaw(raw map[string]json.RawMessage) (string, error) {
	nodeList, ok := raw["node"]
	if !ok {
		return "", &JSONNodeError{Reason: `missing "node" field`}
	}
	var kinds []interface{}
	if err := json.Unmarshal(nodeList, &kinds); err != nil {
		return "", &JSONNodeError{Reason: `"node" field is not a list`}
	}
	if len(kinds) != 1 {
		return "", &JSONNodeError{Reason: fmt.Sprintf(`"node" field must have exactly one entry, got %d`, len(kinds))}
	}
	kind, ok := kinds[0].(string)
	if !ok || kind == "" {
		return "", &JSONNodeError{Reason: `"node" field entry is not a non-empty string`}
	}
	return kind, nil
}

// LoadNode decodes node JSON (as produced by MarshalNode or returned
// by the service) into a typed node graph. Condensed uid references
// are resolved against full definitions appearing anywhere in the
// same document; an unresolvable reference is an UnresolvedUIDError.
func LoadNode(data []byte) (Node, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &JSONNodeError{Reason: err.Error()}
	}
	kind, err := kindFromRaw(raw)
	if err != nil {
		return nil, err
	}
	factory, ok := nodeFactories[kind]
	if !ok {
		return nil, &JSONNodeError{Reason: fmt.Sprintf("unknown node type %q", kind)}
	}
	n := factory()
	if err := json.Unmarshal(data, n); err != nil {
		return nil, &JSONNodeError{Reason: err.Error()}
	}
	if err := resolveStubs(n); err != nil {
		return nil, err
	}
	if err := checkKinds(n); err != nil {
		return nil, err
	}
	return n, nil
}

// resolveStubs replaces uid-only references with the full node bearing
// that uid, wherever one is defined in the graph.
func resolveStubs(root Node) error {
	defined := map[string]Node{}
	Walk(root, func(n Node) {
		if nb := n.base(); !isStub(n) && nb.UID != "" {
			defined[nb.UID] = n
		}
	})

	seen := map[Node]bool{}
	var resolve func(n Node) error
	resolve = func(n Node) error {
		if seen[n] {
			return nil
		}
		seen[n] = true
		v := reflect.ValueOf(n)
		for v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		for _, f := range nodeFields(v.Type()) {
			fv := v.FieldByIndex(f.index)
			switch {
			case f.isNode:
				if fv.IsNil() {
					continue
				}
				child := fv.Interface().(Node)
				if isStub(child) {
					full, err := lookupStub(defined, child, fv.Type())
					if err != nil {
						return err
					}
					fv.Set(reflect.ValueOf(full))
					child = full
				}
				if err := resolve(child); err != nil {
					return err
				}
			case f.isNodes:
				for i := 0; i < fv.Len(); i++ {
					ev := fv.Index(i)
					if ev.IsNil() {
						continue
					}
					child := ev.Interface().(Node)
					if isStub(child) {
						full, err := lookupStub(defined, child, ev.Type())
						if err != nil {
							return err
						}
						ev.Set(reflect.ValueOf(full))
						child = full
					}
					if err := resolve(child); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	return resolve(root)
}

func lookupStub(defined map[string]Node, stub Node, want reflect.Type) (Node, error) {
	uid := stub.base().UID
	full, ok := defined[uid]
	if !ok {
		return nil, &UnresolvedUIDError{UID: uid}
	}
	if !reflect.TypeOf(full).AssignableTo(want) {
		return nil, &JSONNodeError{Reason: fmt.Sprintf("node %q has type %s where %s expected", uid, nodeKind(full), want.Elem().Name())}
	}
	return full, nil
}

// checkKinds verifies that each decoded node's "node" field names the
// type it was decoded into.
func checkKinds(root Node) error {
	var err error
	Walk(root, func(n Node) {
		if err != nil {
			return
		}
		if kind := n.base().Kind(); kind != "" && kind != nodeKind(n) {
			err = &JSONNodeError{Reason: fmt.Sprintf("node %q declared as %q", nodeKind(n), kind)}
		}
	})
	return err
}
