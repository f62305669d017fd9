package httpclient

import (
	"context"
	"net/http"
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	vimeo "github.com/mutablelogic/go-vimeo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a video platform HTTP client that wraps the base HTTP client
// and provides typed methods for metadata calls and the streaming upload
// protocol.
type Client struct {
	*client.Client
	endpoint *url.URL
	token    string
	raw      *http.Client
}

var _ vimeo.Videos = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new platform client with the given API endpoint, bearer
// token and options. Use schema.APIEndpoint for the production API. The
// token is attached to requests on the API host only; ticket transfer
// endpoints live on separate hosts and are never sent the token.
func New(endpoint, token string, opts ...client.ClientOpt) (*Client, error) {
	c := new(Client)
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	c.endpoint = u
	c.token = token

	cl, err := client.New(append(opts, client.OptEndpoint(endpoint))...)
	if err != nil {
		return nil, err
	}
	c.Client = cl

	// The upload protocol answers in status codes and response headers
	// (the progress probe replies 308 with a Range header), so redirects
	// must be surfaced to the caller rather than followed.
	c.raw = &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// do performs an API-host request with the bearer token attached.
func (c *Client) do(ctx context.Context, payload client.Payload, out any, opts ...client.RequestOpt) error {
	if c.token != "" {
		opts = append(opts, client.OptReqHeader("Authorization", "Bearer "+c.token))
	}
	return c.DoWithContext(ctx, payload, out, opts...)
}

// resolve makes an API-issued link absolute against the client endpoint.
// Ticket completion links and pagination links are issued as paths
// relative to the API host.
func (c *Client) resolve(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		u = c.endpoint.ResolveReference(u)
	}
	return u, nil
}

// onAPIHost returns true when the url points at the platform's own API
// host, in which case the bearer token is attached automatically.
func (c *Client) onAPIHost(u *url.URL) bool {
	return u.Host == c.endpoint.Host
}
