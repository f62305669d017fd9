// Package httpclient provides a typed Go client for a Vimeo-style
// video-hosting REST API, including the resumable streaming upload
// protocol.
//
// Create a client with:
//
//	client, err := httpclient.New(schema.APIEndpoint, token)
//	if err != nil {
//	   panic(err)
//	}
//
// Then use the client to upload and manage videos:
//
//	// Upload a local file
//	result, err := client.UploadFile(ctx, "movie.mp4", nil)
package httpclient
