// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"context"
	"encoding/json"
	"fmt"
)

// SearchMode selects how a search query is matched against nodes.
type SearchMode string

const (
	// SearchModeNodeType lists all nodes of the resource type;
	// the query is ignored.
	SearchModeNodeType SearchMode = "node_type"
	// SearchModeExactName matches nodes whose name equals the
	// query.
	SearchModeExactName SearchMode = "exact_name"
	// SearchModeContainsName matches nodes whose name contains
	// the query.
	SearchModeContainsName SearchMode = "contains_name"
	// SearchModeUUID matches the single node with the query UUID.
	SearchModeUUID SearchMode = "uuid"
)

// SearchParams expresses which results are requested in a search
// API.
type SearchParams struct {
	Select  []string `json:"select,omitempty"`
	Filters []Filter `json:"filters,omitempty"`
	Limit   *int     `json:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"`
	Order   string   `json:"order,omitempty"`
}

// A Filter restricts the set of records returned by a search API.
type Filter struct {
	Attr     string
	Operator string
	Operand  interface{}
}

// MarshalJSON encodes a Filter to a JSON array.
func (f *Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{f.Attr, f.Operator, f.Operand})
}

// UnmarshalJSON decodes a JSON array to a Filter.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var elements []interface{}
	err := json.Unmarshal(data, &elements)
	if err != nil {
		return err
	}
	if len(elements) != 3 {
		return fmt.Errorf("invalid filter %q: must have 3 elements", data)
	}
	attr, ok := elements[0].(string)
	if !ok {
		return fmt.Errorf("invalid filter attr %q", elements[0])
	}
	op, ok := elements[1].(string)
	if !ok {
		return fmt.Errorf("invalid filter operator %q", elements[1])
	}
	operand := elements[2]
	switch operand.(type) {
	case string, float64, []interface{}:
	default:
		return fmt.Errorf("invalid filter operand %q", elements[2])
	}
	*f = Filter{attr, op, operand}
	return nil
}

// SearchResult is one page of search results. Items hold raw node
// JSON; use Nodes to decode them.
type SearchResult struct {
	Items          []json.RawMessage `json:"items"`
	ItemsAvailable int               `json:"items_available"`
	Offset         int               `json:"offset"`
	Limit          int               `json:"limit"`
}

// Nodes decodes the page's items into typed nodes.
func (r *SearchResult) Nodes() ([]Node, error) {
	nodes := make([]Node, 0, len(r.Items))
	for _, item := range r.Items {
		n, err := LoadNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// A Paginator fetches successive pages of a search. Call Page until
// Done reports true.
type Paginator struct {
	Client *Client
	Path   string
	Query  map[string]interface{}
	Params SearchParams

	fetched   int
	available int
	started   bool
}

// Page fetches and returns the next page of results.
func (p *Paginator) Page(ctx context.Context) (*SearchResult, error) {
	params := p.Params
	params.Offset += p.fetched
	query := map[string]interface{}{}
	for k, v := range p.Query {
		query[k] = v
	}
	buf, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(buf, &query); err != nil {
		return nil, err
	}
	var page SearchResult
	err = p.Client.RequestAndDecodeContext(ctx, &page, "GET", p.Path, nil, query)
	if err != nil {
		return nil, err
	}
	p.fetched += len(page.Items)
	p.available = page.ItemsAvailable
	p.started = true
	return &page, nil
}

// Done reports whether all available results have been fetched.
func (p *Paginator) Done() bool {
	return p.started && p.fetched >= p.available
}
