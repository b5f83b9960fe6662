package apierr

import "fmt"

// Error codes surfaced to API callers. The three upstream_* codes are all
// returned as 500s but stay distinguishable in the response body.
const (
	CodeInvalidRequest        = "invalid_request"
	CodeStudentNotFound       = "student_not_found"
	CodeAggregationFailed     = "aggregation_failed"
	CodeUpstreamTransport     = "upstream_transport_error"
	CodeUpstreamEmptyResponse = "upstream_empty_response"
	CodeMalformedModelPayload = "malformed_model_payload"
)

type Error struct {
	Status  int
	Code    string
	Err     error
	Details string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func WithDetails(status int, code string, err error, details string) *Error {
	return &Error{Status: status, Code: code, Err: err, Details: details}
}
