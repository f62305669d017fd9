package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// exchange is the result of a single raw HTTP exchange against an upload
// endpoint. A non-2xx status is not an error at this level: the header
// and body are retained so the caller can inspect server state on error
// responses.
type exchange struct {
	Status int
	Header http.Header
	Body   []byte
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// exchange performs one HTTP exchange. The target may be absolute (ticket
// transfer endpoints) or a path relative to the API host (session create,
// ticket completion). The bearer token is attached only when the target is
// on the API host.
func (c *Client) exchange(ctx context.Context, method, target string, body []byte, header http.Header) (*exchange, error) {
	u, err := c.resolve(target)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.token != "" && c.onAPIHost(u) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.raw.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &exchange{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// success reports whether the exchange completed with a 2xx status
func (e *exchange) success() bool {
	return e.Status >= 200 && e.Status < 300
}

// errFor converts a failed exchange into an error naming the operation
func (e *exchange) errFor(op string) error {
	return fmt.Errorf("%s: unexpected status %d", op, e.Status)
}
