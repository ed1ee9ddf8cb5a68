package response

import "eventgallery/internal/contracts"

// StandardApiResponse is the envelope every handler writes.
type StandardApiResponse struct {
	Success bool                `json:"success"`         // true when Data is meaningful
	Data    interface{}         `json:"data,omitempty"`  // Payload for success
	Error   *contracts.APIError `json:"error,omitempty"` // Failure description
}
