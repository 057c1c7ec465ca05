// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// User is an account on the data-management service. User nodes are
// created and maintained by the service; clients only reference them.
type User struct {
	NodeBase
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	OrcID    string `json:"orcid,omitempty"`
}

func (u *User) resourceName() string { return "user" }

// Group is a named set of users sharing access to projects. Like
// User, it is managed by the service.
type Group struct {
	NodeBase
	Name  string  `json:"name,omitempty"`
	Admin []*User `json:"admin,omitempty"`
	User  []*User `json:"user,omitempty"`
}

func (g *Group) resourceName() string { return "group" }
