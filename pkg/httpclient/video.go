package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
	schema "github.com/mutablelogic/go-vimeo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetVideo returns a single video by identifier. Unlike the upload path,
// transport and decoding errors propagate to the caller.
func (c *Client) GetVideo(ctx context.Context, id string) (*schema.Video, error) {
	var video schema.Video
	if err := c.do(ctx, client.NewRequest(), &video,
		client.OptPath("me", "videos", id),
	); err != nil {
		return nil, err
	}
	return &video, nil
}

// ListVideos returns all videos for the authenticated user, sorted by
// date descending, optionally filtered by a search query. The listing
// follows each page's next link until the last page, concatenating items
// in server-provided order. No deduplication is performed: when the
// remote collection changes between page fetches, duplicates or gaps
// may occur.
func (c *Client) ListVideos(ctx context.Context, req schema.ListVideosRequest) ([]schema.Video, error) {
	query := make(url.Values)
	query.Set("direction", "desc")
	query.Set("sort", "date")
	query.Set("per_page", strconv.Itoa(schema.DefaultPageSize))
	if req.Query != "" {
		query.Set("query", req.Query)
	}

	var page schema.VideoList
	if err := c.do(ctx, client.NewRequest(), &page,
		client.OptPath("me", "videos"),
		client.OptQuery(query),
	); err != nil {
		return nil, err
	}
	videos := append([]schema.Video{}, page.Data...)

	// Follow the next link to the last page. Next links are issued as
	// paths with query, relative to the API host.
	for page.Paging.Next != nil {
		next, err := c.resolve(types.PtrString(page.Paging.Next))
		if err != nil {
			return nil, err
		}
		page = schema.VideoList{}
		if err := c.do(ctx, client.NewRequest(), &page,
			client.OptReqEndpoint(next.String()),
		); err != nil {
			return nil, err
		}
		videos = append(videos, page.Data...)
	}

	return videos, nil
}

// PatchVideo patches properties onto an existing video, given its
// resource location as issued by the API (for example "/videos/12345").
// Only explicitly-set properties are serialized, as dotted wire keys.
func (c *Client) PatchVideo(ctx context.Context, location string, props schema.VideoProperties) (*schema.Video, error) {
	payload, err := newJSONPayload(http.MethodPatch, props)
	if err != nil {
		return nil, err
	}
	target, err := c.resolve(location)
	if err != nil {
		return nil, err
	}
	var video schema.Video
	if err := c.do(ctx, payload, &video,
		client.OptReqEndpoint(target.String()),
	); err != nil {
		return nil, err
	}
	return &video, nil
}

// DeleteVideo deletes a video by identifier
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.do(ctx,
		client.NewRequestEx(http.MethodDelete, ""),
		nil,
		client.OptPath("me", "videos", id),
	)
}
