package schema

import (
	"encoding/json"
	"strings"
	"time"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Video is the remote video resource
type Video struct {
	URI          string    `json:"uri,omitempty"`
	Name         string    `json:"name,omitempty"`
	Description  string    `json:"description,omitempty"`
	Link         string    `json:"link,omitempty"`
	Duration     int64     `json:"duration,omitempty"`
	Width        int64     `json:"width,omitempty"`
	Height       int64     `json:"height,omitempty"`
	Language     string    `json:"language,omitempty"`
	License      string    `json:"license,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedTime  time.Time `json:"created_time,omitzero"`
	ModifiedTime time.Time `json:"modified_time,omitzero"`
	Privacy      *Privacy  `json:"privacy,omitempty"`
	User         *User     `json:"user,omitempty"`
}

// Privacy describes who may view, embed and download a video
type Privacy struct {
	View     string `json:"view,omitempty"`
	Embed    string `json:"embed,omitempty"`
	Comments string `json:"comments,omitempty"`
	Download bool   `json:"download"`
	Add      bool   `json:"add"`
}

// User is the owner reference attached to videos and upload tickets
type User struct {
	URI     string `json:"uri,omitempty"`
	Name    string `json:"name,omitempty"`
	Link    string `json:"link,omitempty"`
	Account string `json:"account,omitempty"`
}

// ListVideosRequest filters a listing of the authenticated user's videos
type ListVideosRequest struct {
	Query string `json:"query,omitempty" help:"Filter videos by search query"`
}

// VideoList is one page of a paginated listing
type VideoList struct {
	Total   int64   `json:"total"`
	Page    int64   `json:"page"`
	PerPage int64   `json:"per_page"`
	Paging  Paging  `json:"paging"`
	Data    []Video `json:"data"`
}

// Paging carries the pagination links of a listing page. Next is nil on
// the last page.
type Paging struct {
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
	First    *string `json:"first,omitempty"`
	Last     *string `json:"last,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (v Video) String() string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (u User) String() string {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (l VideoList) String() string {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Id returns the trailing path segment of the video resource URI, or an
// empty string when the URI is not set
func (v *Video) Id() string {
	if v == nil {
		return ""
	}
	return VideoId(v.URI)
}

// VideoId returns the video identifier from a resource URI or location
// path, for example "/videos/12345" yields "12345"
func VideoId(uri string) string {
	return pathBase(uri)
}

// pathBase returns the portion of a path after the final slash, ignoring
// any query string
func pathBase(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
