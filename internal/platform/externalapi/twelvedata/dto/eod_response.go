// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// EODResponse represents the JSON response from the Twelve Data eod endpoint.
// On failure the endpoint answers with status "error" plus a code and message.
type EODResponse struct {
	Status   string `json:"status,omitempty"`
	Code     int    `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange,omitempty"`
	Datetime string `json:"datetime"`
	Close    string `json:"close"`
}
