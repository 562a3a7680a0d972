package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// APIClient is a JSON HTTP client for integration tests.
type APIClient struct {
	base   string
	client *http.Client
	t      *testing.T
}

// NewAPIClient returns a client rooted at base, e.g. "http://127.0.0.1:8080".
func NewAPIClient(t *testing.T, base string) *APIClient {
	t.Helper()
	return &APIClient{base: base, client: &http.Client{Timeout: 10 * time.Second}, t: t}
}

// Do sends method to path with body encoded as JSON (nil sends no body) and
// decodes the response into out when out is non-nil.
//
// Postcondition: Returns the response status code, or fails the test on
// transport or decode errors.
func (c *APIClient) Do(method, path string, body, out any) int {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("encoding request body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	if err != nil {
		c.t.Fatalf("building request %s %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}
