package vimeo

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-vimeo/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// INTERFACES

// Videos is the interface for the video-hosting platform API
type Videos interface {
	// Upload video content under a name, with optional properties to set
	// once the upload has completed. Remote failures during the upload are
	// accumulated in the result rather than returned as an error.
	Upload(context.Context, string, []byte, *schema.VideoProperties, ...Opt) (*schema.UploadResult, error)

	// Upload a local file, with optional properties to set once the
	// upload has completed
	UploadFile(context.Context, string, *schema.VideoProperties, ...Opt) (*schema.UploadResult, error)

	// Return a single video by identifier
	GetVideo(context.Context, string) (*schema.Video, error)

	// Return all videos for the authenticated user, following pagination
	// until exhausted
	ListVideos(context.Context, schema.ListVideosRequest) ([]schema.Video, error)

	// Patch properties of an existing video, given its resource location
	PatchVideo(context.Context, string, schema.VideoProperties) (*schema.Video, error)

	// Delete a video by identifier
	DeleteVideo(context.Context, string) error
}

// Store is the interface for a blob store used as an upload source
type Store interface {
	// List keys under a prefix
	List(context.Context, string) ([]string, error)

	// Read the full content of a key
	ReadAll(context.Context, string) ([]byte, error)

	// Write content to a key
	WriteAll(context.Context, string, []byte) error

	// Release resources
	Close() error
}
