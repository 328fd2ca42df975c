package errors

const (
	HttpInternalError           = "internal_error"
	HttpInvalidJsonError        = "invalid_json"
	HttpInvalidSampleError      = "invalid_sample"
	HttpInvalidDurationError    = "invalid_duration"
	HttpDurationOutOfRangeError = "duration_out_of_range"
	HttpDuplicateSampleError    = "duplicate_sample"
	HttpInvalidQueryError       = "invalid_query"
)

// ErrorResponse is the error response body for ingestion errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
