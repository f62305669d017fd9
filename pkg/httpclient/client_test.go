package httpclient_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	// Packages
	httpclient "github.com/mutablelogic/go-vimeo/pkg/httpclient"
	schema "github.com/mutablelogic/go-vimeo/pkg/schema"
)

const (
	testToken   = "test-token"
	testTicket  = "ticket-1"
	testVideoId = "12345"
)

// platform is a fake video platform exercising the client end to end:
// session tickets, chunked transfer with failure injection, progress
// probes, finalization and metadata calls.
type platform struct {
	srv *httptest.Server

	mu       sync.Mutex
	received []byte   // bytes durably received for the current ticket
	requests []string // method + path log, in order

	// Failure injection
	createStatus int           // non-zero forces this status on session create
	failWrites   int           // fail this many chunk writes with 500 after storing
	rejectWrites int           // reject this many chunk writes with 500, storing nothing
	acceptFn     func(int) int // bytes of a chunk write to durably accept
	dropRange    bool          // omit the Range header from probe responses
	dropLocation bool          // omit the Location header from the completion response

	patched map[string]any   // body of the last property patch
	pages   [][]schema.Video // listing fixture, one slice per page
	queries []string         // query strings seen by the listing endpoint
}

func newTestServer(t *testing.T) (*httpclient.Client, *platform, func()) {
	t.Helper()
	p := new(platform)
	p.srv = httptest.NewServer(http.HandlerFunc(p.handle))
	c, err := httpclient.New(p.srv.URL, testToken)
	if err != nil {
		p.srv.Close()
		t.Fatalf("newTestServer: failed to create client: %v", err)
	}
	return c, p, p.srv.Close
}

func (p *platform) handle(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.requests = append(p.requests, r.Method+" "+r.URL.Path)
	p.mu.Unlock()

	// The token is only ever attached on the API host; the fake hosts
	// both endpoints, so only the API paths are checked.
	if strings.HasPrefix(r.URL.Path, "/me/") && r.Header.Get("Authorization") != "Bearer "+testToken {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/me/videos":
		p.createSession(w, r)
	case r.Method == http.MethodPut && r.URL.Path == "/upload/"+testTicket:
		p.upload(w, r)
	case r.Method == http.MethodDelete && r.URL.Path == "/complete/"+testTicket:
		p.complete(w)
	case r.Method == http.MethodPatch && r.URL.Path == "/videos/"+testVideoId:
		p.patch(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/me/videos/"+testVideoId:
		p.video(w)
	case r.Method == http.MethodGet && r.URL.Path == "/me/videos":
		p.listing(w, r)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/me/videos/"):
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (p *platform) createSession(w http.ResponseWriter, r *http.Request) {
	if p.createStatus != 0 {
		http.Error(w, "create disabled", p.createStatus)
		return
	}
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["type"] != schema.UploadApproach {
		http.Error(w, "unexpected session type", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(schema.UploadTicket{
		URI:              "/videos/tickets/" + testTicket,
		TicketId:         testTicket,
		CompleteURI:      "/complete/" + testTicket,
		UploadLinkSecure: p.srv.URL + "/upload/" + testTicket,
		User:             &schema.User{URI: "/users/1", Name: "tester"},
	})
}

func (p *platform) upload(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Progress probe: report the reconciled range, 308 like the real
	// platform, optionally with the Range header suppressed
	if r.Header.Get(schema.ContentRangeHeader) == schema.ProbeContentRange {
		if !p.dropRange {
			w.Header().Set(schema.RangeHeader, fmt.Sprintf("bytes 0-%d", len(p.received)))
		}
		w.WriteHeader(http.StatusPermanentRedirect)
		return
	}

	// Chunk write: "bytes {start}-{end}/{end}"
	var start, end, total int64
	if _, err := fmt.Sscanf(r.Header.Get(schema.ContentRangeHeader), "bytes %d-%d/%d", &start, &end, &total); err != nil {
		http.Error(w, "bad content-range", http.StatusBadRequest)
		return
	}
	if start != int64(len(p.received)) {
		http.Error(w, "offset mismatch", http.StatusConflict)
		return
	}
	if p.rejectWrites > 0 {
		p.rejectWrites--
		http.Error(w, "injected write rejection", http.StatusInternalServerError)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusInternalServerError)
		return
	}
	accept := len(body)
	if p.acceptFn != nil {
		accept = p.acceptFn(len(body))
	}
	p.received = append(p.received, body[:accept]...)
	if p.failWrites > 0 {
		// The bytes were durably received but the response is lost
		p.failWrites--
		http.Error(w, "injected write failure", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (p *platform) complete(w http.ResponseWriter) {
	if !p.dropLocation {
		w.Header().Set(schema.LocationHeader, "/videos/"+testVideoId)
	}
	w.WriteHeader(http.StatusCreated)
}

func (p *platform) patch(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.patched = make(map[string]any)
	if err := json.NewDecoder(r.Body).Decode(&p.patched); err != nil {
		http.Error(w, "bad patch body", http.StatusBadRequest)
		return
	}
	p.video(w)
}

func (p *platform) video(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schema.Video{
		URI:  "/videos/" + testVideoId,
		Name: "uploaded video",
		Link: "https://example.com/" + testVideoId,
	})
}

// listing serves the pages fixture, linking each page to the next
func (p *platform) listing(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, r.URL.RawQuery)

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		fmt.Sscanf(v, "%d", &page)
	}
	if page < 1 || page > len(p.pages) {
		http.Error(w, "no such page", http.StatusNotFound)
		return
	}

	var total int
	for _, items := range p.pages {
		total += len(items)
	}
	list := schema.VideoList{
		Total:   int64(total),
		Page:    int64(page),
		PerPage: schema.DefaultPageSize,
		Data:    p.pages[page-1],
	}
	if page < len(p.pages) {
		next := fmt.Sprintf("/me/videos?page=%d&per_page=%d", page+1, schema.DefaultPageSize)
		list.Paging.Next = &next
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// countRequests returns how many logged requests match the prefix
func (p *platform) countRequests(prefix string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	var count int
	for _, r := range p.requests {
		if strings.HasPrefix(r, prefix) {
			count++
		}
	}
	return count
}

func (p *platform) numRequests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}
