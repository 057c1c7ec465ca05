// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// TransactionError is an error response from the API server. The
// request's Authorization header is never included in the error text.
type TransactionError struct {
	Method     string
	URL        url.URL
	StatusCode int
	Status     string
	Errors     []string `json:"error"`
}

func (e TransactionError) Error() (s string) {
	s = fmt.Sprintf("request failed: %s", e.URL.String())
	if e.Status != "" {
		s = s + ": " + e.Status
	}
	if len(e.Errors) > 0 {
		s = s + ": " + strings.Join(e.Errors, "; ")
	}
	return
}

func (e TransactionError) HTTPStatus() int {
	return e.StatusCode
}

func newTransactionError(req *http.Request, resp *http.Response, buf []byte) *TransactionError {
	var e TransactionError
	if json.Unmarshal(buf, &e) != nil {
		// No JSON-formatted error response
		e.Errors = nil
	}
	e.Method = req.Method
	e.URL = *req.URL
	if resp != nil {
		e.Status = resp.Status
		e.StatusCode = resp.StatusCode
	}
	return &e
}

// RedactedToken returns the token with its middle half replaced by
// "*", suitable for log and error messages.
func RedactedToken(token string) string {
	if token == "" {
		return ""
	}
	show := len(token) / 4
	return token[:show] + strings.Repeat("*", len(token)-2*show) + token[len(token)-show:]
}

// connectionError wraps a transport-level failure with the API host
// and a redacted copy of the token, so a user can tell a bad host or
// token from a network problem. The full token never appears in the
// error text: a bad token value can itself be what made the request
// fail, so any occurrence in the underlying error is redacted too.
func connectionError(c *Client, err error) error {
	msg := err.Error()
	if c.AuthToken == "" {
		return fmt.Errorf("error connecting to %s: %s", c.APIHost, msg)
	}
	msg = strings.ReplaceAll(msg, c.AuthToken, RedactedToken(c.AuthToken))
	return fmt.Errorf("error connecting to %s (token %s): %s", c.APIHost, RedactedToken(c.AuthToken), msg)
}
