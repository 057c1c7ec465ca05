// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"context"
	"encoding/json"
	"fmt"
)

// Schema is the service's description of the data model: for each
// node type, its required fields and the JSON kind of each known
// field.
type Schema struct {
	Version   string                    `json:"version"`
	NodeTypes map[string]NodeTypeSchema `json:"node_types"`
}

// NodeTypeSchema describes one node type. Fields maps field names to
// JSON kinds: "string", "number", "bool", "list", or "node".
type NodeTypeSchema struct {
	Required []string          `json:"required"`
	Fields   map[string]string `json:"fields"`
}

// SchemaError indicates node JSON that violates the data-model
// schema.
type SchemaError struct {
	Kind   string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s node violates schema: field %q %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s node violates schema: %s", e.Kind, e.Reason)
}

// ValidateJSON checks node JSON (and, recursively, all nested nodes)
// against the schema. UID-only references are accepted without
// further checks.
func (s *Schema) ValidateJSON(data []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return &JSONNodeError{Reason: err.Error()}
	}
	return s.validateDoc(doc)
}

func (s *Schema) validateDoc(doc map[string]interface{}) error {
	if _, ok := doc["node"]; !ok {
		if _, ok := doc["uid"]; ok && len(doc) == 1 {
			// Condensed reference to a node defined elsewhere.
			return nil
		}
		return &JSONNodeError{Reason: `missing "node" field`}
	}
	kinds, ok := doc["node"].([]interface{})
	if !ok || len(kinds) != 1 {
		return &JSONNodeError{Reason: `"node" field must be a one-element list`}
	}
	kind, ok := kinds[0].(string)
	if !ok || kind == "" {
		return &JSONNodeError{Reason: `"node" field entry is not a non-empty string`}
	}
	ts, ok := s.NodeTypes[kind]
	if !ok {
		return &SchemaError{Kind: kind, Reason: "unknown node type"}
	}
	for _, req := range ts.Required {
		if _, ok := doc[req]; !ok {
			return &SchemaError{Kind: kind, Field: req, Reason: "is required"}
		}
	}
	for field, value := range doc {
		want, ok := ts.Fields[field]
		if !ok {
			continue
		}
		if err := s.validateField(kind, field, want, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateField(kind, field, want string, value interface{}) error {
	switch want {
	case "string":
		if _, ok := value.(string); !ok {
			return &SchemaError{Kind: kind, Field: field, Reason: "must be a string"}
		}
	case "number":
		if _, ok := value.(float64); !ok {
			return &SchemaError{Kind: kind, Field: field, Reason: "must be a number"}
		}
	case "bool":
		if _, ok := value.(bool); !ok {
			return &SchemaError{Kind: kind, Field: field, Reason: "must be a boolean"}
		}
	case "node":
		child, ok := value.(map[string]interface{})
		if !ok {
			return &SchemaError{Kind: kind, Field: field, Reason: "must be a node"}
		}
		return s.validateDoc(child)
	case "list":
		list, ok := value.([]interface{})
		if !ok {
			return &SchemaError{Kind: kind, Field: field, Reason: "must be a list"}
		}
		for _, element := range list {
			if child, ok := element.(map[string]interface{}); ok {
				if err := s.validateDoc(child); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Schema fetches the data-model schema from the service, caching it
// for the lifetime of the client.
func (c *Client) Schema(ctx context.Context) (*Schema, error) {
	if cached, ok := c.cache().Get("schema"); ok {
		return cached.(*Schema), nil
	}
	var schema Schema
	err := c.RequestAndDecodeContext(ctx, &schema, "GET", "api/v1/schema", nil, nil)
	if err != nil {
		return nil, err
	}
	c.cache().Add("schema", &schema)
	return &schema, nil
}

// ValidateNode checks a node graph against the service's data-model
// schema, and, for projects, the orphan rules.
func (c *Client) ValidateNode(ctx context.Context, n Node) error {
	schema, err := c.Schema(ctx)
	if err != nil {
		return err
	}
	buf, err := MarshalNode(n)
	if err != nil {
		return err
	}
	if err := schema.ValidateJSON(buf); err != nil {
		return err
	}
	if p, ok := n.(*Project); ok {
		return p.CheckOrphans()
	}
	return nil
}
