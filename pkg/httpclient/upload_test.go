package httpclient_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	vimeo "github.com/mutablelogic/go-vimeo"
	schema "github.com/mutablelogic/go-vimeo/pkg/schema"
)

func testContent(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte('a' + i%26)
	}
	return data
}

func TestUpload(t *testing.T) {
	c, p, cleanup := newTestServer(t)
	defer cleanup()

	data := testContent(10 * 1024)
	result, err := c.Upload(context.Background(), "movie.mp4", data, nil)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := result.Err(); err != nil {
		t.Errorf("expected no remote errors, got %v", err)
	}
	if result.Ticket == nil || result.Ticket.TicketId != testTicket {
		t.Errorf("ticket: got %v", result.Ticket)
	}
	if result.Video == nil || result.Video.Id() != testVideoId {
		t.Errorf("video: got %v", result.Video)
	}
	if !bytes.Equal(p.received, data) {
		t.Errorf("server received %d bytes, want %d", len(p.received), len(data))
	}
}

func TestUpload_emptyFile(t *testing.T) {
	c, p, cleanup := newTestServer(t)
	defer cleanup()

	result, err := c.Upload(context.Background(), "empty.mp4", nil, nil)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.Video == nil {
		t.Error("expected video on empty upload")
	}
	if n := p.countRequests("PUT"); n != 0 {
		t.Errorf("expected no transfer calls for empty content, got %d", n)
	}
}

func TestUpload_sessionCreateFails(t *testing.T) {
	c, p, cleanup := newTestServer(t)
	defer cleanup()
	p.createStatus = 403

	result, err := c.Upload(context.Background(), "movie.mp4", testContent(128), nil)
	if err != nil {
		t.Fatalf("Upload: session-create failure must be returned as data, got %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.Ticket != nil || result.Video != nil {
		t.Errorf("expected no ticket or video, got %v / %v", result.Ticket, result.Video)
	}
	// The hard stop happens before any bytes are sent
	if n := p.numRequests(); n != 1 {
		t.Errorf("expected no further remote calls, got %d requests", n)
	}
}

func TestUpload_chunkWriteFailureTolerated(t *testing.T) {
	c, p, cleanup := newTestServer(t)
	defer cleanup()
	// The first chunk write is answered with 500 even though the bytes
	// were durably received; the probe reports the full range and the
	// upload proceeds to finalize.
	p.failWrites = 1

	data := testContent(2048)
	result, err := c.Upload(context.Background(), "movie.mp4", data, nil, vimeo.WithBackoff(0))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(result.Errors) == 0 {
		t.Error("expected the failed write to be recorded")
	}
	if result.Video == nil {
		t.Error("expected the upload to finalize despite the failed write")
	}
	if !bytes.Equal(p.received, data) {
		t.Errorf("server received %d bytes, want %d", len(p.received), len(data))
	}
}

func TestUpload_resumeFromServerOffset(t *testing.T) {
	c, p, cleanup := newTestServer(t)
	defer cleanup()
	// The server only keeps half of the first write; the loop must resume
	// from the server-reported offset, not the local write count.
	first := true
	p.acceptFn = func(n int) int {
		if first {
			first = false
			return n / 2
		}
		return n
	}

	data := testContent(4096)
	var offsets []int64
	result, err := c.Upload(context.Background(), "movie.mp4", data, nil,
		vimeo.WithBackoff(0),
		vimeo.WithProgress(func(confirmed, total int64) {
			offsets = append(offsets, confirmed)
		}),
	)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !bytes.Equal(p.received, data) {
		t.Errorf("server received %d bytes, want %d", len(p.received), len(data))
	}
	if n := p.countRequests("PUT"); n != 4 {
		// two chunk writes and two probes
		t.Errorf("expected 4 transfer calls, got %d", n)
	}
	if len(offsets) != 2 || offsets[0] != 2048 || offsets[1] != 4096 {
		t.Errorf("progress offsets: got %v, want [2048 4096]", offsets)
	}
	if result.Video == nil {
		t.Error("expected video after resumed upload")
	}
}

func TestUpload_stallIsBounded(t *testing.T) {
	c, p, cleanup := newTestServer(t)
	defer cleanup()
	// Probe responses never carry a usable Range header; the loop must
	// abort after the retry budget instead of spinning.
	p.dropRange = true
	p.rejectWrites = 1 << 30

	_, err := c.Upload(context.Background(), "movie.mp4", testContent(512), nil,
		vimeo.WithRetries(2),
		vimeo.WithBackoff(0),
	)
	if err == nil {
		t.Fatal("expected a stall error")
	}
	if !strings.Contains(err.Error(), "stalled") {
		t.Errorf("unexpected error: %v", err)
	}
	// One write and one probe per iteration, bounded by the retry budget
	if n := p.countRequests("PUT"); n > 6 {
		t.Errorf("expected at most 6 transfer calls, got %d", n)
	}
}

func TestUpload_missingLocation(t *testing.T) {
	c, p, cleanup := newTestServer(t)
	defer cleanup()
	p.dropLocation = true

	result, err := c.Upload(context.Background(), "movie.mp4", testContent(256), nil, vimeo.WithBackoff(0))
	if err == nil {
		t.Fatal("expected a hard error when finalize returns no location")
	}
	if result.Video != nil {
		t.Error("expected no video when finalize fails")
	}
}

func TestUpload_withProperties(t *testing.T) {
	c, p, cleanup := newTestServer(t)
	defer cleanup()

	props := &schema.VideoProperties{
		Name:        types.StringPtr("My Movie"),
		PrivacyView: types.StringPtr("password"),
		Password:    types.StringPtr("secret"),
	}
	result, err := c.Upload(context.Background(), "movie.mp4", testContent(1024), props)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := result.Err(); err != nil {
		t.Errorf("expected no remote errors, got %v", err)
	}
	p.mu.Lock()
	patched := p.patched
	p.mu.Unlock()
	if patched == nil {
		t.Fatal("expected a property patch")
	}
	if patched["name"] != "My Movie" || patched["privacy.view"] != "password" {
		t.Errorf("patched properties: got %v", patched)
	}
	if len(patched) != 3 {
		t.Errorf("expected 3 patched keys, got %d: %v", len(patched), patched)
	}
}
