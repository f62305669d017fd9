package vimeo

import (
	"net/url"
	"time"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	types "github.com/mutablelogic/go-server/pkg/types"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type opt struct {
	s3endpoint *string
	region     *string
	accesskey  *string
	secretkey  *string
	tracer     trace.Tracer
	progress   ProgressFunc
	retries    *uint
	backoff    *time.Duration
}

// Opt represents a function that modifies the options
type Opt func(*opt) error

// ProgressFunc is called during an upload whenever the server confirms
// more bytes have been received
type ProgressFunc func(confirmed, total int64)

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	defaultRetries = uint(10)
	defaultBackoff = 500 * time.Millisecond
	maxBackoff     = 30 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ApplyOpts applies the given options to the opt struct
func ApplyOpts(opts ...Opt) (*opt, error) {
	var o opt

	// Apply the options
	for _, fn := range opts {
		if err := fn(&o); err != nil {
			return nil, err
		}
	}

	// Return success
	return &o, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - GET

func (o *opt) S3Endpoint() *string {
	return o.s3endpoint
}

func (o *opt) Region() string {
	return types.PtrString(o.region)
}

func (o *opt) Credentials() (string, string, bool) {
	if o.accesskey == nil || o.secretkey == nil {
		return "", "", false
	}
	return types.PtrString(o.accesskey), types.PtrString(o.secretkey), true
}

func (o *opt) Tracer() trace.Tracer {
	return o.tracer
}

func (o *opt) Progress() ProgressFunc {
	return o.progress
}

// Retries returns the maximum number of consecutive no-progress iterations
// tolerated by the upload loop before it aborts
func (o *opt) Retries() uint {
	if o.retries == nil {
		return defaultRetries
	}
	return *o.retries
}

// Backoff returns the initial delay between no-progress iterations. The
// delay doubles on each consecutive stall, capped at MaxBackoff.
func (o *opt) Backoff() time.Duration {
	if o.backoff == nil {
		return defaultBackoff
	}
	return *o.backoff
}

// MaxBackoff returns the cap applied to the exponential backoff delay
func (o *opt) MaxBackoff() time.Duration {
	return maxBackoff
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - SET

// Set the S3 endpoint URL for the store
func WithS3Endpoint(endpoint string) Opt {
	return func(o *opt) error {
		if endpoint == "" {
			o.s3endpoint = nil
		} else if url, err := url.Parse(endpoint); err != nil {
			return httpresponse.ErrBadRequest.Withf("Invalid S3 endpoint: %s", err)
		} else if url.Scheme != "http" && url.Scheme != "https" {
			return httpresponse.ErrBadRequest.Withf("Invalid S3 endpoint scheme: %q", url.Scheme)
		} else {
			o.s3endpoint = types.StringPtr(url.String())
		}
		return nil
	}
}

// Set the AWS region for the store
func WithRegion(region string) Opt {
	return func(o *opt) error {
		o.region = &region
		return nil
	}
}

// Set static credentials for the store, for S3-compatible endpoints
// which are not configured through the ambient AWS environment
func WithCredentials(accesskey, secretkey string) Opt {
	return func(o *opt) error {
		if accesskey == "" || secretkey == "" {
			return httpresponse.ErrBadRequest.With("Missing access key or secret key")
		}
		o.accesskey = types.StringPtr(accesskey)
		o.secretkey = types.StringPtr(secretkey)
		return nil
	}
}

// Set the tracer used for tracing operations
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opt) error {
		o.tracer = tracer
		return nil
	}
}

// Set a progress callback for uploads
func WithProgress(fn ProgressFunc) Opt {
	return func(o *opt) error {
		o.progress = fn
		return nil
	}
}

// Set the maximum number of consecutive no-progress iterations tolerated
// by the upload loop before it aborts
func WithRetries(n uint) Opt {
	return func(o *opt) error {
		if n == 0 {
			return httpresponse.ErrBadRequest.With("Retries must be at least one")
		}
		o.retries = &n
		return nil
	}
}

// Set the initial backoff delay applied when the upload loop makes no
// progress
func WithBackoff(d time.Duration) Opt {
	return func(o *opt) error {
		if d < 0 {
			return httpresponse.ErrBadRequest.With("Backoff cannot be negative")
		}
		o.backoff = &d
		return nil
	}
}
