package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	types "github.com/mutablelogic/go-server/pkg/types"
	vimeo "github.com/mutablelogic/go-vimeo"
	schema "github.com/mutablelogic/go-vimeo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// UploadFile uploads a local file as a new video, with optional properties
// to set once the upload has completed. The file is read into memory up
// front; its length is fixed for the duration of the upload.
func (c *Client) UploadFile(ctx context.Context, path string, props *schema.VideoProperties, opts ...vimeo.Opt) (*schema.UploadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Upload(ctx, filepath.Base(path), data, props, opts...)
}

// Upload transfers video content to the platform using the streaming
// upload protocol: create a session ticket, send chunks to the ticket's
// transfer endpoint, probe the server for the bytes it actually holds,
// resume from the server-reported offset, then finalize the session into
// a video resource.
//
// Remote failures during intermediate steps do not abort the upload; they
// accumulate in the result's error list and the loop continues from the
// server-verified state. A returned error is reserved for local or
// unrecoverable conditions: an undecodable ticket, a missing Location
// after finalize, or exhaustion of the no-progress retry budget.
func (c *Client) Upload(ctx context.Context, name string, data []byte, props *schema.VideoProperties, opts ...vimeo.Opt) (*schema.UploadResult, error) {
	o, err := vimeo.ApplyOpts(opts...)
	if err != nil {
		return nil, err
	}

	// OTEL span covering the whole upload sequence
	var failure error
	ctx, endFunc := otel.StartSpan(o.Tracer(), ctx, schema.SchemaName+".Upload")
	defer func() { endFunc(failure) }()

	// Session creation is the one hard-stop remote condition before any
	// bytes are sent: on failure the result carries exactly one error and
	// no further remote calls are made.
	result := new(schema.UploadResult)
	ticket, remote, err := c.createTicket(ctx)
	if err != nil {
		failure = err
		return result, failure
	}
	if remote != nil {
		result.Append(remote)
		return result, nil
	}
	result.Ticket = ticket

	// Chunked transfer loop
	if err := c.transfer(ctx, ticket, data, o.Progress(), o.Retries(), o.Backoff(), o.MaxBackoff(), result); err != nil {
		failure = err
		return result, failure
	}

	// Finalization converts the session into a permanent video resource.
	// A transport error is recorded and the Location header is still
	// required: without it the remaining steps are meaningless.
	location, remote := c.complete(ctx, ticket)
	if remote != nil {
		result.Append(remote)
	}
	if location == "" {
		failure = fmt.Errorf("complete upload %q: no video location returned", name)
		return result, failure
	}

	// Optional property patch
	if !props.IsZero() {
		if _, err := c.PatchVideo(ctx, location, *props); err != nil {
			result.Append(fmt.Errorf("patch properties: %w", err))
		}
	}

	// Final fetch of the new video resource
	if video, err := c.GetVideo(ctx, schema.VideoId(location)); err != nil {
		result.Append(fmt.Errorf("fetch video: %w", err))
	} else {
		result.Video = video
	}

	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// createTicket issues the "create streaming upload" call. The second
// return value is a tolerable remote failure (non-201 or transport
// error); the third is a local error from an undecodable ticket.
func (c *Client) createTicket(ctx context.Context) (*schema.UploadTicket, error, error) {
	body, err := json.Marshal(map[string]string{"type": schema.UploadApproach})
	if err != nil {
		return nil, nil, err
	}
	header := make(http.Header)
	header.Set(types.ContentTypeHeader, types.ContentTypeJSON)

	resp, err := c.exchange(ctx, http.MethodPost, "/me/videos", body, header)
	if err != nil {
		return nil, fmt.Errorf("create upload session: %w", err), nil
	}
	if resp.Status != http.StatusCreated {
		return nil, resp.errFor("create upload session"), nil
	}

	ticket := new(schema.UploadTicket)
	if err := json.Unmarshal(resp.Body, ticket); err != nil {
		return nil, nil, fmt.Errorf("decode upload ticket: %w", err)
	}
	if !ticket.Valid() {
		return nil, nil, fmt.Errorf("decode upload ticket: missing session fields")
	}
	return ticket, nil, nil
}

// transfer runs the chunked transfer loop until the server has confirmed
// the whole byte range. The confirmed offset only advances on the
// server's answer to a probe. Iterations without forward progress are
// bounded by the retry budget with capped exponential backoff, so the
// loop cannot spin indefinitely.
func (c *Client) transfer(ctx context.Context, ticket *schema.UploadTicket, data []byte, progress vimeo.ProgressFunc, retries uint, initial, limit time.Duration, result *schema.UploadResult) error {
	total := int64(len(data))
	var confirmed int64
	var stalls uint
	backoff := initial

	for confirmed < total {
		// Send the remaining range. A failed write does not abort: the
		// probe below re-queries the true server state.
		if err := c.writeChunk(ctx, ticket, data, confirmed, total); err != nil {
			result.Append(err)
		}

		// Ask the server what it actually has. A transport failure on the
		// probe is recorded and treated as a stalled iteration.
		rangevalue, err := c.probe(ctx, ticket)
		if err != nil {
			result.Append(err)
		}

		next, ok := nextOffset(rangevalue, confirmed)
		advanced := ok && next > confirmed
		if ok && next != confirmed {
			// The server's answer is authoritative, including regression
			confirmed = next
			if progress != nil {
				progress(min(confirmed, total), total)
			}
		}

		if advanced {
			stalls = 0
			backoff = initial
			continue
		}
		if confirmed >= total {
			break
		}
		if stalls++; stalls > retries {
			return fmt.Errorf("upload stalled after %d attempts without progress", retries)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, limit)
	}

	return nil
}

// writeChunk PUTs the byte range [start, total) to the ticket's transfer
// endpoint with a content-range header of the form "bytes {start}-{end}/{end}".
func (c *Client) writeChunk(ctx context.Context, ticket *schema.UploadTicket, data []byte, start, total int64) error {
	header := make(http.Header)
	header.Set(schema.ContentRangeHeader, fmt.Sprintf("bytes %d-%d/%d", start, total, total))
	header.Set(types.ContentTypeHeader, types.ContentTypeBinary)

	resp, err := c.exchange(ctx, http.MethodPut, ticket.UploadLinkSecure, data[start:], header)
	if err != nil {
		return fmt.Errorf("write chunk at offset %d: %w", start, err)
	}
	if !resp.success() {
		return resp.errFor(fmt.Sprintf("write chunk at offset %d", start))
	}
	return nil
}

// probe issues a zero-body content-range probe against the transfer
// endpoint and returns the server-reported range header. The header is
// inspected whatever the status: the server answers the probe with 308.
func (c *Client) probe(ctx context.Context, ticket *schema.UploadTicket) (string, error) {
	header := make(http.Header)
	header.Set(schema.ContentRangeHeader, schema.ProbeContentRange)

	resp, err := c.exchange(ctx, http.MethodPut, ticket.UploadLinkSecure, nil, header)
	if err != nil {
		return "", fmt.Errorf("probe upload progress: %w", err)
	}
	return resp.Header.Get(schema.RangeHeader), nil
}

// complete DELETEs the ticket's completion endpoint to finalize the
// upload, returning the Location of the new video resource.
func (c *Client) complete(ctx context.Context, ticket *schema.UploadTicket) (string, error) {
	resp, err := c.exchange(ctx, http.MethodDelete, ticket.CompleteURI, nil, nil)
	if err != nil {
		return "", fmt.Errorf("complete upload: %w", err)
	}
	location := resp.Header.Get(schema.LocationHeader)
	if !resp.success() {
		return location, resp.errFor("complete upload")
	}
	return location, nil
}
