// Package api defines the shared HTTP response envelopes used by all handlers.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the JSON body returned on successful login or refresh.
// RefreshToken is the opaque credential persisted server-side; Token is the
// signed JWT presented as the bearer credential on subsequent requests.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
