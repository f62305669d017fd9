package main

import (
	"os"

	// Packages
	client "github.com/mutablelogic/go-client"
	httpclient "github.com/mutablelogic/go-vimeo/pkg/httpclient"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client builds a platform HTTP client from the global flags.
func (g *Globals) Client() (*httpclient.Client, error) {
	opts := []client.ClientOpt{}
	if g.GetDebug() {
		opts = append(opts, client.OptTrace(os.Stderr, g.Trace))
	}
	if g.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.Timeout))
	}
	return httpclient.New(g.Endpoint, g.Token, opts...)
}
