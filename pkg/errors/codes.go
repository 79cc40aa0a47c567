package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal      ErrorCode = "COMMON_001"
	ErrCodeValidation    ErrorCode = "COMMON_002"
	ErrCodeIO            ErrorCode = "COMMON_003"
	ErrCodeSerialization ErrorCode = "COMMON_004"
	ErrCodeUnavailable   ErrorCode = "COMMON_005"
	ErrCodeNotFound      ErrorCode = "COMMON_006"
	ErrCodeConflict      ErrorCode = "COMMON_007"
	ErrCodeOK            ErrorCode = "OK"
	ErrCodeUnknown       ErrorCode = "UNKNOWN"
)

// Aggregation Error Codes
const (
	ErrCodeMalformedFilename ErrorCode = "AGG_001"
	ErrCodeMissingIndexFile  ErrorCode = "AGG_002"
	ErrCodeInvalidRecord     ErrorCode = "AGG_003"
)

// Diagram Error Codes
const (
	ErrCodeTemplateMismatch   ErrorCode = "DGM_001"
	ErrCodeInvalidRange       ErrorCode = "DGM_002"
	ErrCodeMissingVariable    ErrorCode = "DGM_003"
	ErrCodeAssetUnavailable   ErrorCode = "DGM_004"
	ErrCodeTemplateUnparsable ErrorCode = "DGM_005"
)

// Publishing Error Codes
const (
	ErrCodePublishFailed ErrorCode = "PUB_001"
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeValidation:         "validation failed",
	ErrCodeIO:                 "filesystem operation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeUnavailable:        "dependency unavailable",
	ErrCodeNotFound:           "not found",
	ErrCodeConflict:           "resource held by another owner",
	ErrCodeMalformedFilename:  "result filename does not follow the naming convention",
	ErrCodeMissingIndexFile:   "consolidated index file not found",
	ErrCodeInvalidRecord:      "operating point record is not valid JSON",
	ErrCodeTemplateMismatch:   "template cell not found",
	ErrCodeInvalidRange:       "degenerate normalization domain",
	ErrCodeMissingVariable:    "operating point variable missing",
	ErrCodeAssetUnavailable:   "diagram asset unavailable",
	ErrCodeTemplateUnparsable: "diagram template could not be parsed",
	ErrCodePublishFailed:      "publishing failed",
}

// DefaultMessage returns the default message registered for code, or the code
// itself when none is registered.
func DefaultMessage(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return code.String()
}

//Personal.AI order the ending
