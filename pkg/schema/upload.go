package schema

import (
	"encoding/json"
	"errors"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// UploadResult is the aggregate outcome of an upload. Remote failures
// during intermediate steps do not abort the upload; they accumulate in
// Errors and disposition is left to the caller. Video is only set when
// the whole sequence completed.
type UploadResult struct {
	Ticket *UploadTicket `json:"ticket,omitempty"`
	Video  *Video        `json:"video,omitempty"`
	Errors []error       `json:"-"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r UploadResult) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Err returns the accumulated remote errors joined into one, or nil when
// the upload completed without any
func (r *UploadResult) Err() error {
	if r == nil {
		return nil
	}
	return errors.Join(r.Errors...)
}

// Append records a non-fatal remote error against the result
func (r *UploadResult) Append(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}
