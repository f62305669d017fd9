package schema

import "encoding/json"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// UploadTicket is the server-issued session descriptor authorizing a single
// upload attempt. It is issued once per attempt by the "create session" call
// and is immutable once issued.
type UploadTicket struct {
	URI              string `json:"uri,omitempty"`
	TicketId         string `json:"ticket_id,omitempty"`
	CompleteURI      string `json:"complete_uri,omitempty"`
	UploadLinkSecure string `json:"upload_link_secure,omitempty"`
	User             *User  `json:"user,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t UploadTicket) String() string {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Valid returns true when the ticket carries everything the upload loop
// needs: an identifier, a transfer endpoint and a completion endpoint.
func (t *UploadTicket) Valid() bool {
	if t == nil {
		return false
	}
	return t.TicketId != "" && t.UploadLinkSecure != "" && t.CompleteURI != ""
}
