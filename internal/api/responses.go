// Package api holds the response envelopes referenced by swagger annotations.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"class session is full"`
}

type MessageResponse struct {
	Message string `json:"message" example:"booking cancelled"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}
