// Package contact submits contact form values to a remote endpoint and tracks
// which outcome notice the user should see.
package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the flat record sent for one submission attempt.
// Values are copied verbatim from the form controls.
type Payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// PayloadFrom snapshots the current values of the four controls.
func PayloadFrom(f Fields) Payload {
	return Payload{
		Name:    f.Value(FieldName),
		Email:   f.Value(FieldEmail),
		Subject: f.Value(FieldSubject),
		Message: f.Value(FieldMessage),
	}
}

// Encode returns the JSON request body. HTML characters are left unescaped and
// no trailing newline is written.
func (p Payload) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("contact: encoding payload: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
