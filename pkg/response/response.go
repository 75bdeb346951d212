package response

// Response is the envelope every API reply uses, success or failure.
type Response struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{Status: "success", StatusCode: statusCode, Data: data}
}

// Error wraps a human-readable message in an error envelope. Domain error
// messages are used verbatim; internal errors should be summarized by the
// caller before reaching here.
func Error(statusCode int, err string) Response {
	return Response{Status: "error", StatusCode: statusCode, Error: err}
}
