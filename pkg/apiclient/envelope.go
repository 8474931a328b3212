package apiclient

import "encoding/json"

// Envelope is the platform's uniform response wrapper.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Reason returns the server-side failure text: the error field when present,
// otherwise the message field.
func (e *Envelope) Reason() string {
	if e == nil {
		return ""
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Decode unmarshals the data payload into v.
func (e *Envelope) Decode(v any) error {
	if e == nil || len(e.Data) == 0 {
		return ErrEmptyResponse
	}
	return json.Unmarshal(e.Data, v)
}

// AuthData is the token-bearing payload of login, register and refresh
// responses. User is kept raw; its shape belongs to the platform's user
// model, not to this client.
type AuthData struct {
	Token     string          `json:"token"`
	ExpiresIn string          `json:"expires_in"`
	User      json.RawMessage `json:"user,omitempty"`
}

// CSRFData is the payload of the CSRF endpoint.
type CSRFData struct {
	Token string `json:"token"`
}
