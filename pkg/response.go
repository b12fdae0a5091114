package pkg

// Response is the envelope used by the health endpoints.
type Response struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// NewResponse creates a new Response with the given code, data, and message.
func NewResponse(code int, data any, message string) Response {
	return Response{
		Code:    code,
		Data:    data,
		Message: message,
	}
}

// ErrorBody describes a single failure shown to the user.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse wraps exactly one ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewError builds an ErrorResponse.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
}
