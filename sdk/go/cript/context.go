// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import "context"

type contextKeyRequestID struct{}

// ContextWithRequestID returns a child context that, when used with a
// Client, sends the given X-Request-Id value with each request.
func ContextWithRequestID(ctx context.Context, reqid string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, reqid)
}

type contextKeyAuthorization struct{}

// ContextWithAuthorization returns a child context that, when used
// with a Client, sends the given Authorization header value instead
// of the client's own token.
func ContextWithAuthorization(ctx context.Context, value string) context.Context {
	return context.WithValue(ctx, contextKeyAuthorization{}, value)
}
