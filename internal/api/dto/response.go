package dto

// ApiResponse is the envelope every JSON endpoint returns. TokenExpired
// reports whether the presented bearer token had expired; it is informational
// and mirrors the shape the web and mobile clients already consume.
type ApiResponse struct {
	Message      string `json:"message"`
	StatusCode   int    `json:"statusCode"`
	Data         any    `json:"data"`
	TokenExpired bool   `json:"tokenExpired"`
}

// NewResponse builds an envelope.
func NewResponse(message string, statusCode int, data any) ApiResponse {
	return ApiResponse{Message: message, StatusCode: statusCode, Data: data}
}
