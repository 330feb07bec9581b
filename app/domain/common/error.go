package common

// Error codes for the broker's failure taxonomy.
const (
	CodeConnectRejected = "connect_rejected"
	CodeDecodeError     = "decode_error"
	CodePipelineError   = "pipeline_error"
	CodeSendError       = "send_error"
	CodeTransportError  = "transport_error"
)

// Error represents a standardized error with code and message
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError creates a new Error instance
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// String returns the string representation of the error
func (e *Error) String() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Message
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.String()
}
