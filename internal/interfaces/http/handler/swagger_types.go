package handler

import "github.com/shopadmin/backend/internal/interfaces/http/dto"

// Swagger-only envelopes. Handlers write dto.Response; these give swag a
// typed Data field for each endpoint.

type APIResponse[T any] struct {
	Success bool           `json:"success" example:"true"`
	Data    T              `json:"data,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
