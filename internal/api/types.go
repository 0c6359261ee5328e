// Package api defines the request and response types shared by the HTTP
// handlers.
package api

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries the JWT issued on successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
