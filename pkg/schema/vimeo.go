package schema

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	SchemaName = "vimeo"

	// APIEndpoint is the default endpoint for the platform API
	APIEndpoint = "https://api.vimeo.com"

	// UploadApproach is the upload type requested when creating a session
	UploadApproach = "streaming"

	// HTTP headers used by the upload protocol
	ContentRangeHeader = "Content-Range"
	RangeHeader        = "Range"
	LocationHeader     = "Location"

	// ProbeContentRange is the Content-Range value of a zero-body request
	// which asks the server to report its received-byte range
	ProbeContentRange = "bytes */*"

	// DefaultPageSize is the page size used when listing videos
	DefaultPageSize = 100
)
