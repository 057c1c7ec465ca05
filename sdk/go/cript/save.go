// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"bytes"
	"context"
	"fmt"
)

// resource is implemented by primary nodes, which have their own API
// endpoints.
type resource interface {
	Node
	resourceName() string
}

// Save validates a node graph and uploads it to the service as
// condensed JSON. New nodes (no service-assigned URL) are created
// with POST; previously saved nodes are updated with PATCH. The
// service's copy of the node, including assigned url and uuid
// fields, is decoded back into n.
func (c *Client) Save(ctx context.Context, n Node) error {
	rsc, ok := n.(resource)
	if !ok {
		return fmt.Errorf("%s nodes cannot be saved directly, save the primary node containing them", nodeKind(n))
	}
	if err := c.ValidateNode(ctx, n); err != nil {
		return err
	}
	buf, err := MarshalNode(n)
	if err != nil {
		return err
	}
	method, path := "POST", "api/v1/"+rsc.resourceName()
	if c.saved(n) {
		method, path = "PATCH", path+"/"+n.base().UUID
	}
	return c.RequestAndDecodeContext(ctx, n, method, path, bytes.NewReader(buf), nil)
}

// saved reports whether n has been stored by the service before.
func (c *Client) saved(n Node) bool {
	if p, ok := n.(interface{ primaryBase() *PrimaryBase }); ok {
		return p.primaryBase().URL != ""
	}
	return false
}

// Get fetches the node with the given UUID into dst, which determines
// the resource endpoint, e.g.
//
//	var p cript.Project
//	err := client.Get(ctx, &p, uuid)
func (c *Client) Get(ctx context.Context, dst Node, uuid string) error {
	rsc, ok := dst.(resource)
	if !ok {
		return fmt.Errorf("%s nodes have no retrieval endpoint", nodeKind(dst))
	}
	return c.RequestAndDecodeContext(ctx, dst, "GET", "api/v1/"+rsc.resourceName()+"/"+uuid, nil, nil)
}

// Delete removes a previously saved node from the service.
func (c *Client) Delete(ctx context.Context, n Node) error {
	rsc, ok := n.(resource)
	if !ok {
		return fmt.Errorf("%s nodes have no deletion endpoint", nodeKind(n))
	}
	return c.RequestAndDecodeContext(ctx, nil, "DELETE", "api/v1/"+rsc.resourceName()+"/"+n.base().UUID, nil, nil)
}

// Search queries the service for nodes of the resource type named by
// example (e.g. &Material{}), returning a Paginator over the
// matching records.
func (c *Client) Search(example Node, mode SearchMode, query string, params SearchParams) (*Paginator, error) {
	rsc, ok := example.(resource)
	if !ok {
		return nil, fmt.Errorf("%s nodes are not searchable", nodeKind(example))
	}
	q := map[string]interface{}{"mode": string(mode)}
	if query != "" {
		q["q"] = query
	}
	return &Paginator{
		Client: c,
		Path:   "api/v1/search/" + rsc.resourceName(),
		Query:  q,
		Params: params,
	}, nil
}
