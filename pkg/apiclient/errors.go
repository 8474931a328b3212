package apiclient

import "errors"

var (
	// ErrInvalidBaseURL indicates the API base URL could not be parsed
	ErrInvalidBaseURL = errors.New("apiclient.invalid_base_url")

	// ErrEncodePayload indicates the request payload could not be marshaled
	ErrEncodePayload = errors.New("apiclient.encode_payload")

	// ErrEmptyResponse indicates the server answered without a body
	ErrEmptyResponse = errors.New("apiclient.empty_response")

	// ErrMalformedResponse indicates the body is not a valid envelope
	ErrMalformedResponse = errors.New("apiclient.malformed_response")

	// ErrUnexpectedStatus indicates a non-2xx HTTP status
	ErrUnexpectedStatus = errors.New("apiclient.unexpected_status")
)
