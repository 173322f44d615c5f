package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeFinderInputInvalid ErrorCode = "FINDER_INPUT_INVALID"
	ErrCodeWhatIfBonusInvalid ErrorCode = "WHATIF_BONUS_INVALID"

	ErrCodeCatalogLoadFailed     ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogInvalid        ErrorCode = "CATALOG_INVALID"
	ErrCodeScholarshipNotFound   ErrorCode = "SCHOLARSHIP_NOT_FOUND"
	ErrCodeSearchFailed          ErrorCode = "SEARCH_FAILED"
	ErrCodeSearchTimeout         ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeSearchIndexNotFound   ErrorCode = "SEARCH_INDEX_NOT_FOUND"
	ErrCodeSearchQueryInvalid    ErrorCode = "SEARCH_QUERY_INVALID"
	ErrCodeDatabaseQueryFailed   ErrorCode = "DATABASE_QUERY_FAILED"
	ErrCodeDatabaseConnectFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	ErrCodeCompareListFull    ErrorCode = "COMPARE_LIST_FULL"
	ErrCodeCompareDuplicate   ErrorCode = "COMPARE_DUPLICATE"
	ErrCodeCompareStoreFailed ErrorCode = "COMPARE_STORE_FAILED"
	ErrCodeCompareInvalid     ErrorCode = "COMPARE_REQUEST_INVALID"

	ErrCodeLeadValidationFailed ErrorCode = "LEAD_VALIDATION_FAILED"
	ErrCodeLeadStoreFailed      ErrorCode = "LEAD_STORE_FAILED"
	ErrCodeNotificationFailed   ErrorCode = "NOTIFICATION_FAILED"

	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeTimeout              ErrorCode = "TIMEOUT_ERROR"
	ErrCodeExternalService      ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeResourceNotFound     ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeBusinessRule         ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_ERROR"
)

// StandardError is the error type returned by workers and services.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// BPMNError is a StandardError translated for the process engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// As unwraps err to a StandardError.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the code of err, or INTERNAL_ERROR when err carries none.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := As(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

func NewFinderInputInvalidError(details string) *StandardError {
	return newError(ErrCodeFinderInputInvalid, "Finder input is invalid", details, false)
}

// NewWhatIfBonusInvalidError creates a non-retryable input error.
func NewWhatIfBonusInvalidError(details string) *StandardError {
	return newError(ErrCodeWhatIfBonusInvalid, "What-if bonus is out of range", details, false)
}

// NewCatalogLoadFailedError creates a retryable catalog source error.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Scholarship catalog could not be loaded",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewCatalogInvalidError(details string) *StandardError {
	return newError(ErrCodeCatalogInvalid, "Scholarship catalog is invalid", details, false)
}

// NewScholarshipNotFoundError creates a non-retryable not found error.
func NewScholarshipNotFoundError(slug string) *StandardError {
	return newError(ErrCodeScholarshipNotFound, "Scholarship not found in catalog",
		fmt.Sprintf("slug: %s", slug), false)
}

// NewSearchFailedError creates a retryable search error.
func NewSearchFailedError(err error) *StandardError {
	return newError(ErrCodeSearchFailed, "Scholarship search failed", err.Error(), true)
}

func NewSearchTimeoutError(index string) *StandardError {
	return newError(ErrCodeSearchTimeout, "Scholarship search timeout", fmt.Sprintf("index: %s", index), true)
}

func NewSearchIndexNotFoundError(index string) *StandardError {
	return newError(ErrCodeSearchIndexNotFound, "Search index not found", fmt.Sprintf("index: %s", index), false)
}

func NewSearchQueryInvalidError(details string) *StandardError {
	return newError(ErrCodeSearchQueryInvalid, "Search query is invalid", details, false)
}

func NewDatabaseQueryFailedError(query string, err error) *StandardError {
	return newError(ErrCodeDatabaseQueryFailed, "Database query execution error",
		fmt.Sprintf("query: %s, error: %s", query, err.Error()), true)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectFailed, "Database connection error", err.Error(), true)
}

// NewCompareListFullError creates a non-retryable business rule error.
func NewCompareListFullError(limit int) *StandardError {
	return newError(ErrCodeCompareListFull, "Compare list is full",
		fmt.Sprintf("at most %d scholarships can be compared", limit), false)
}

func NewCompareDuplicateError(slug string) *StandardError {
	return newError(ErrCodeCompareDuplicate, "Scholarship is already in the compare list",
		fmt.Sprintf("slug: %s", slug), false)
}

// NewCompareStoreFailedError creates a retryable storage error.
func NewCompareStoreFailedError(err error) *StandardError {
	return newError(ErrCodeCompareStoreFailed, "Compare list storage error", err.Error(), true)
}

func NewCompareInvalidError(details string) *StandardError {
	return newError(ErrCodeCompareInvalid, "Compare request is invalid", details, false)
}

func NewLeadValidationFailedError(details string) *StandardError {
	return newError(ErrCodeLeadValidationFailed, "Lead data validation failed", details, false)
}

// NewLeadStoreFailedError creates a retryable storage error.
func NewLeadStoreFailedError(err error) *StandardError {
	return newError(ErrCodeLeadStoreFailed, "Lead intake storage error", err.Error(), true)
}

// NewNotificationFailedError creates a retryable delivery error.
func NewNotificationFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Input validation failed", details, false)
}

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRule, message, details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthenticationFailed, "Authentication failed", details, false)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// BPMNErrorMapping maps internal codes to the error codes caught by boundary
// events in the admissions process models.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeFinderInputInvalid:   "FINDER_INPUT_INVALID",
	ErrCodeWhatIfBonusInvalid:   "WHATIF_BONUS_INVALID",
	ErrCodeCatalogLoadFailed:    "CATALOG_UNAVAILABLE",
	ErrCodeCatalogInvalid:       "CATALOG_INVALID",
	ErrCodeScholarshipNotFound:  "SCHOLARSHIP_NOT_FOUND",
	ErrCodeSearchFailed:         "SEARCH_UNAVAILABLE",
	ErrCodeSearchTimeout:        "SEARCH_UNAVAILABLE",
	ErrCodeSearchIndexNotFound:  "SEARCH_UNAVAILABLE",
	ErrCodeCompareListFull:      "COMPARE_LIST_FULL",
	ErrCodeCompareDuplicate:     "COMPARE_DUPLICATE",
	ErrCodeCompareStoreFailed:   "COMPARE_UNAVAILABLE",
	ErrCodeLeadValidationFailed: "LEAD_INVALID",
	ErrCodeLeadStoreFailed:      "LEAD_UNAVAILABLE",
	ErrCodeNotificationFailed:   "NOTIFICATION_FAILED",
}

// GetRetryCount returns the number of job retries for code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogLoadFailed,
		ErrCodeSearchFailed,
		ErrCodeDatabaseQueryFailed,
		ErrCodeDatabaseConnectFailed,
		ErrCodeCompareStoreFailed,
		ErrCodeLeadStoreFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeSearchTimeout,
		ErrCodeTimeout,
		ErrCodeNotificationFailed:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError maps a StandardError to its BPMN error code.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "FINDER") || strings.HasPrefix(codeStr, "WHATIF"):
		return "FINDER"
	case strings.HasPrefix(codeStr, "CATALOG") || strings.HasPrefix(codeStr, "SCHOLARSHIP"):
		return "CATALOG"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.HasPrefix(codeStr, "COMPARE"):
		return "COMPARE"
	case strings.HasPrefix(codeStr, "LEAD"):
		return "LEAD"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps a code to the status returned by the HTTP API.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeFinderInputInvalid, ErrCodeWhatIfBonusInvalid, ErrCodeLeadValidationFailed,
		ErrCodeValidationFailed, ErrCodeSearchQueryInvalid, ErrCodeCompareInvalid:
		return http.StatusBadRequest
	case ErrCodeScholarshipNotFound, ErrCodeResourceNotFound:
		return http.StatusNotFound
	case ErrCodeCompareDuplicate, ErrCodeCompareListFull, ErrCodeBusinessRule:
		return http.StatusConflict
	case ErrCodeTimeout, ErrCodeSearchTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeSearchFailed, ErrCodeSearchIndexNotFound, ErrCodeCompareStoreFailed,
		ErrCodeLeadStoreFailed, ErrCodeCatalogLoadFailed, ErrCodeExternalService,
		ErrCodeDatabaseQueryFailed, ErrCodeDatabaseConnectFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
