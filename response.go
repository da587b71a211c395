package authsvc

// Response types reported in the envelope.
const (
	TypeSuccess = "success"
	TypeError   = "error"
)

// Response is the single JSON envelope returned by every endpoint.
type Response struct {
	Result       any           `json:"result"`
	Type         string        `json:"type"`                   // success | error
	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"` // set only when Type is error
}

// ErrorDetails carries a stable machine-readable code and a client-safe message.
type ErrorDetails struct {
	ErrorCode string `json:"errorCode"` // e.g. "VALIDATION_FAILED", "INVALID_CREDENTIALS"
	Message   string `json:"message"`
}

// Success wraps a result in a success envelope. A nil result is encoded as {}.
func Success(result any) Response {
	if result == nil {
		result = struct{}{}
	}
	return Response{Result: result, Type: TypeSuccess}
}

// Failure builds an error envelope.
func Failure(code, message string) Response {
	return Response{
		Result:       struct{}{},
		Type:         TypeError,
		ErrorDetails: &ErrorDetails{ErrorCode: code, Message: message},
	}
}

// Message is the result payload for endpoints that only acknowledge.
type Message struct {
	Message string `json:"message"`
}
