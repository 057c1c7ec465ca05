// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	lru "github.com/hashicorp/golang-lru"
)

// A Client is an HTTP client with an API endpoint and a CRIPT API
// token.
//
// It offers low-level request methods, and node-level methods like
// Save and Search that implement the common patterns of working with
// the data-management API.
type Client struct {
	// HTTP client used to make requests. If nil,
	// DefaultSecureClient or InsecureHTTPClient will be used.
	Client *http.Client `json:"-"`

	// Protocol scheme: "http", "https", or "" (https)
	Scheme string

	// Hostname (or host:port) of the CRIPT API server.
	APIHost string

	// API authentication token.
	AuthToken string

	// Accept unverified certificates. This works only if the
	// Client field is nil: otherwise, it has no effect.
	Insecure bool

	// HTTP headers to add/override in outgoing requests.
	SendHeader http.Header

	// Timeout for requests. NewClientFromEnv returns a Client
	// with a default 5 minute timeout. Within this timeout,
	// transient failures (5xx, 429) are retried with exponential
	// backoff. To disable the timeout and retries, set Timeout to
	// zero.
	Timeout time.Duration

	defaultRequestID string

	// APIHost and AuthToken were loaded from CRIPT_* env vars
	// (used to customize "no host/token" error messages)
	loadedFromEnv bool

	// schema and vocabulary cache, see cache()
	lruCache *lru.Cache
	lruSetup sync.Once
}

// InsecureHTTPClient is the default http.Client used by a Client with
// Insecure==true and Client==nil.
var InsecureHTTPClient = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true}}}

// DefaultSecureClient is the default http.Client used by a Client otherwise.
var DefaultSecureClient = &http.Client{}

// NewClientFromEnv creates a new Client using the API endpoint and
// credentials given by the CRIPT_API_* environment variables
// (CRIPT_API_HOST, CRIPT_API_TOKEN, CRIPT_API_HOST_INSECURE),
// falling back to $HOME/.config/cript/settings.conf for variables
// that are not set.
func NewClientFromEnv() *Client {
	vars := map[string]string{}
	for k, v := range loadSettingsFile() {
		vars[k] = v
	}
	for _, key := range []string{"CRIPT_API_HOST", "CRIPT_API_TOKEN", "CRIPT_API_HOST_INSECURE"} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}
	var insecure bool
	if s := strings.ToLower(vars["CRIPT_API_HOST_INSECURE"]); s == "1" || s == "yes" || s == "true" {
		insecure = true
	}
	return &Client{
		Scheme:        "https",
		APIHost:       vars["CRIPT_API_HOST"],
		AuthToken:     vars["CRIPT_API_TOKEN"],
		Insecure:      insecure,
		Timeout:       5 * time.Minute,
		loadedFromEnv: true,
	}
}

// loadSettingsFile reads KEY = VALUE pairs from the user settings
// file. Missing file, unparseable lines, and comments are ignored.
func loadSettingsFile() map[string]string {
	vars := map[string]string{}
	home, err := os.UserHomeDir()
	if err != nil {
		return vars
	}
	buf, err := os.ReadFile(home + "/.config/cript/settings.conf")
	if err != nil {
		return vars
	}
	for _, line := range strings.Split(string(buf), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || !strings.HasPrefix(key, "CRIPT_") {
			continue
		}
		vars[key] = value
	}
	return vars
}

// cache returns the client's schema/vocabulary cache, creating it on
// first use.
func (c *Client) cache() *lru.Cache {
	c.lruSetup.Do(func() {
		c.lruCache, _ = lru.New(64)
	})
	return c.lruCache
}

var reqIDGen = idGenerator{prefix: "req-"}

// idGenerator generates alphanumeric strings suitable for use as
// request IDs (a given idGenerator will never return the same ID
// twice).
type idGenerator struct {
	prefix string
	lastID int64
	mtx    sync.Mutex
}

func (g *idGenerator) Next() string {
	id := time.Now().UnixNano()
	g.mtx.Lock()
	if id <= g.lastID {
		id = g.lastID + 1
	}
	g.lastID = id
	g.mtx.Unlock()
	return g.prefix + strconv.FormatInt(id, 36)
}

var reqErrorRe = regexp.MustCompile(`net/http: invalid header `)

// Do adds Authorization and X-Request-Id headers and then calls
// (*http.Client)Do(), retrying transient failures with exponential
// backoff until the configured Timeout expires.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if auth, _ := ctx.Value(contextKeyAuthorization{}).(string); auth != "" {
		req.Header.Add("Authorization", auth)
	} else if c.AuthToken != "" {
		req.Header.Add("Authorization", "Bearer "+c.AuthToken)
	}

	if req.Header.Get("X-Request-Id") == "" {
		var reqid string
		if ctxreqid, _ := ctx.Value(contextKeyRequestID{}).(string); ctxreqid != "" {
			reqid = ctxreqid
		} else if c.defaultRequestID != "" {
			reqid = c.defaultRequestID
		} else {
			reqid = reqIDGen.Next()
		}
		req.Header.Set("X-Request-Id", reqid)
	}

	var cancel context.CancelFunc
	if c.Timeout > 0 {
		ctx, cancel = context.WithDeadline(ctx, time.Now().Add(c.Timeout))
		req = req.WithContext(ctx)
	} else {
		cancel = func() {}
	}

	rclient := retryablehttp.NewClient()
	rclient.HTTPClient = c.httpClient()
	rclient.Backoff = exponentialBackoff
	if c.Timeout > 0 {
		rclient.RetryWaitMax = c.Timeout / 10
		rclient.RetryMax = 32
	} else {
		rclient.RetryMax = 0
	}
	rclient.CheckRetry = func(ctx context.Context, resp *http.Response, respErr error) (bool, error) {
		if c.Timeout == 0 {
			return false, nil
		}
		// Aborted requests are not retryable even though
		// retryablehttp's default policy thinks so.
		if respErr != nil && reqErrorRe.MatchString(respErr.Error()) {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, respErr)
	}
	rclient.Logger = nil

	rreq, err := retryablehttp.FromRequest(req)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := rclient.Do(rreq)
	if (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) && req.Context().Err() != nil {
		// Return the upstream cancellation/deadline error
		// rather than retryablehttp's wrapped version.
		err = req.Context().Err()
	}
	if err != nil {
		cancel()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, connectionError(c, err)
	}
	// We need to call cancel() eventually, but we can't use
	// "defer cancel()" because the context has to stay alive
	// until the caller has finished reading the response body.
	resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// exponentialBackoff implements retryablehttp.Backoff with a minimum
// of min, a maximum of max, full jitter, and support for the
// Retry-After response header.
func exponentialBackoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if attemptNum > 0 && min > 0 && (attemptNum > 30 || min*time.Duration(math.Pow(2, float64(attemptNum))) > max) {
		return max
	}
	if resp != nil && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) {
		if s := resp.Header.Get("Retry-After"); s != "" {
			if sleep, err := strconv.ParseInt(s, 10, 64); err == nil {
				if sleep*int64(time.Second) < int64(min) {
					return min
				} else if sleep*int64(time.Second) > int64(max) {
					return max
				}
				return time.Duration(sleep) * time.Second
			} else if stamp, err := time.Parse(time.RFC1123, s); err == nil {
				interval := time.Until(stamp)
				if interval < min {
					return min
				} else if interval > max {
					return max
				}
				return interval
			}
		}
	}
	if attemptNum == 0 {
		return min
	}
	// I.e., min * 2^attemptNum, with the exponent shared between
	// the jittered and non-jittered portion.
	wait := time.Duration(float64(min) * math.Pow(2, float64(attemptNum)-rand.Float64()))
	if wait > max {
		wait = max
	}
	return wait
}

// cancelOnClose calls a provided CancelFunc when its wrapped
// ReadCloser's Close() method is called.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (coc cancelOnClose) Close() error {
	err := coc.ReadCloser.Close()
	coc.cancel()
	return err
}

func isRedirectStatus(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// DoAndDecode performs req and unmarshals the response (which must be
// JSON) into dst. Use this instead of RequestAndDecode if you need
// more control of the http.Request object.
//
// If the response status indicates an HTTP redirect, the Location
// header value is unmarshalled to dst as a RedirectLocation
// key/field.
func (c *Client) DoAndDecode(dst interface{}, req *http.Request) error {
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300 && dst == nil:
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return json.Unmarshal(buf, dst)

	// If the caller uses a client with a custom CheckRedirect
	// func, Do() might return the 3xx response instead of
	// following it.
	case isRedirectStatus(resp.StatusCode) && dst == nil:
		return nil
	case isRedirectStatus(resp.StatusCode):
		// Copy the redirect target URL to dst.RedirectLocation.
		buf, err := json.Marshal(map[string]string{"redirect_location": resp.Header.Get("Location")})
		if err != nil {
			return err
		}
		return json.Unmarshal(buf, dst)

	default:
		return newTransactionError(req, resp, buf)
	}
}

// Convert an arbitrary struct to url.Values. For example,
//
//	SearchParams{Limit: 123, Order: "name"}
//
// becomes
//
//	url.Values{`limit`:`123`,`order`:`name`}
//
// params itself is returned if it is already an url.Values.
func anythingToValues(params interface{}) (url.Values, error) {
	if v, ok := params.(url.Values); ok {
		return v, nil
	}
	j, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var generic map[string]interface{}
	dec := json.NewDecoder(bytes.NewBuffer(j))
	dec.UseNumber()
	err = dec.Decode(&generic)
	if err != nil {
		return nil, err
	}
	urlValues := url.Values{}
	for k, v := range generic {
		if v, ok := v.(string); ok {
			urlValues.Set(k, v)
			continue
		}
		if v, ok := v.(json.Number); ok {
			urlValues.Set(k, v.String())
			continue
		}
		if v, ok := v.(bool); ok {
			if v {
				urlValues.Set(k, "true")
			} else {
				// "foo=false", "foo=0", and "foo=" are
				// all taken as true strings, so don't
				// send false values at all -- rely on
				// the default being false.
			}
			continue
		}
		j, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(j, []byte("null")) {
			// don't add it to urlValues at all
			continue
		}
		urlValues.Set(k, string(j))
	}
	return urlValues, nil
}

// RequestAndDecode performs an API request and unmarshals the
// response (which must be JSON) into dst. Method and body arguments
// are the same as for http.NewRequest(). A non-nil body is sent as
// JSON; the given params are sent as the query string.
//
// path must not contain a query string.
func (c *Client) RequestAndDecode(dst interface{}, method, path string, body io.Reader, params interface{}) error {
	return c.RequestAndDecodeContext(context.Background(), dst, method, path, body, params)
}

// RequestAndDecodeContext does the same as RequestAndDecode, but with a context
func (c *Client) RequestAndDecodeContext(ctx context.Context, dst interface{}, method, path string, body io.Reader, params interface{}) error {
	if body, ok := body.(io.Closer); ok {
		// Ensure body is closed even if we error out early
		defer body.Close()
	}
	if c.APIHost == "" {
		if c.loadedFromEnv {
			return errors.New("CRIPT_API_HOST and/or CRIPT_API_TOKEN environment variables are not set")
		}
		return errors.New("cript.Client cannot perform request: APIHost is not set")
	}
	urlString := c.apiURL(path)
	if params != nil {
		urlValues, err := anythingToValues(params)
		if err != nil {
			return err
		}
		u, err := url.Parse(urlString)
		if err != nil {
			return err
		}
		u.RawQuery = urlValues.Encode()
		urlString = u.String()
	}
	req, err := http.NewRequest(method, urlString, body)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.SendHeader {
		req.Header[k] = v
	}
	return c.DoAndDecode(dst, req)
}

// WithRequestID returns a new shallow copy of c that sends the given
// X-Request-Id value (instead of a new randomly generated one) with
// each subsequent request that doesn't provide its own via context or
// header.
func (c *Client) WithRequestID(reqid string) *Client {
	cc := *c
	cc.defaultRequestID = reqid
	return &cc
}

func (c *Client) httpClient() *http.Client {
	switch {
	case c.Client != nil:
		return c.Client
	case c.Insecure:
		return InsecureHTTPClient
	default:
		return DefaultSecureClient
	}
}

func (c *Client) apiURL(path string) string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + c.APIHost + "/" + path
}
