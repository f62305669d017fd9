package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	// Packages
	config "github.com/aws/aws-sdk-go-v2/config"
	credentials "github.com/aws/aws-sdk-go-v2/credentials"
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	vimeo "github.com/mutablelogic/go-vimeo"
	otelaws "go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	blob "gocloud.dev/blob"
	s3blob "gocloud.dev/blob/s3blob"
	gcerrors "gocloud.dev/gcerrors"

	// Drivers
	_ "gocloud.dev/blob/fileblob" // file:// URLs
	_ "gocloud.dev/blob/memblob"  // mem:// URLs
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Store is a blob bucket used as a source of upload content. Supported
// URL schemes: mem://, file:// and s3://.
type Store struct {
	bucket *blob.Bucket
	url    *url.URL
}

var _ vimeo.Store = (*Store)(nil)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New opens a blob bucket from a URL. Examples:
//   - "mem://"
//   - "file:///path/to/directory"
//   - "s3://my-bucket?region=us-east-1"
//
// For s3:// URLs the region, endpoint and credentials can be set through
// options, which take precedence over the ambient AWS environment. When a
// tracer is set, AWS SDK middleware is injected so each S3 call produces
// a child span.
func New(ctx context.Context, u string, opts ...vimeo.Opt) (*Store, error) {
	self := new(Store)

	opt, err := vimeo.ApplyOpts(opts...)
	if err != nil {
		return nil, err
	}
	if self.url, err = url.Parse(u); err != nil {
		return nil, err
	}

	switch self.url.Scheme {
	case "s3":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		if opt.Region() != "" {
			cfg.Region = opt.Region()
		} else if region := self.url.Query().Get("region"); region != "" {
			cfg.Region = region
		}
		if accesskey, secretkey, ok := opt.Credentials(); ok {
			cfg.Credentials = credentials.NewStaticCredentialsProvider(accesskey, secretkey, "")
		}
		if opt.Tracer() != nil {
			otelaws.AppendMiddlewares(&cfg.APIOptions)
		}
		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.UsePathStyle = true
			if opt.S3Endpoint() != nil {
				o.BaseEndpoint = opt.S3Endpoint()
			}
		})
		self.bucket, err = s3blob.OpenBucket(ctx, client, self.url.Host, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket: %w", err)
		}
	case "file":
		// The path is the bucket root directory
		openURL := &url.URL{Scheme: "file", Path: self.url.Path}
		bucket, err := blob.OpenBucket(ctx, openURL.String())
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket: %w", err)
		}
		self.bucket = bucket
	case "mem":
		bucket, err := blob.OpenBucket(ctx, "mem://")
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket: %w", err)
		}
		self.bucket = bucket
	default:
		return nil, httpresponse.ErrBadRequest.Withf("unsupported scheme: %q", self.url.Scheme)
	}

	return self, nil
}

// Close releases the bucket
func (s *Store) Close() error {
	if s.bucket == nil {
		return nil
	}
	return s.bucket.Close()
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s *Store) String() string {
	return s.url.String()
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// List returns the keys under a prefix, in lexical order
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.bucket.List(&blob.ListOptions{
		Prefix: strings.TrimPrefix(prefix, "/"),
	})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, blobErr(err, prefix)
		}
		if !obj.IsDir {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// ReadAll returns the full content of a key
func (s *Store) ReadAll(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, strings.TrimPrefix(key, "/"))
	if err != nil {
		return nil, blobErr(err, key)
	}
	return data, nil
}

// WriteAll writes content to a key
func (s *Store) WriteAll(ctx context.Context, key string, data []byte) error {
	if err := s.bucket.WriteAll(ctx, strings.TrimPrefix(key, "/"), data, nil); err != nil {
		return blobErr(err, key)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// blobErr wraps a go-cloud blob error with the appropriate httpresponse error
func blobErr(err error, key string) error {
	if err == nil {
		return nil
	}
	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return httpresponse.ErrNotFound.Withf("key %q not found", key)
	case gcerrors.PermissionDenied:
		return httpresponse.ErrForbidden.Withf("permission denied for %q", key)
	case gcerrors.InvalidArgument:
		return httpresponse.ErrBadRequest.Withf("invalid argument for %q: %v", key, err)
	default:
		return httpresponse.ErrInternalError.Withf("blob operation failed: %v", err)
	}
}
