package response

const (
	// MessageSuccess is the message for successful responses.
	MessageSuccess = "Success"
	// DefaultErrorMessage is returned for unclassified errors.
	DefaultErrorMessage = "Something went wrong"

	// InternalServerErrorCode is the error code for unclassified errors.
	InternalServerErrorCode = 500
	// ValidationErrorCode is the error code for validation failures.
	ValidationErrorCode = 400
	// ValidationErrorMsg is the message for validation failures.
	ValidationErrorMsg = "Validation failed"
)
