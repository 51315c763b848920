package errors

import (
	"fmt"
	"time"
)

type ErrorCode string

const (
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidRegion        ErrorCode = "INVALID_REGION"
	ErrCodeInvalidPath          ErrorCode = "INVALID_PATH"
	ErrCodeInvalidEmail         ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidName          ErrorCode = "INVALID_NAME"
	ErrCodeInvalidPhone         ErrorCode = "INVALID_PHONE"

	ErrCodeCooldownActive     ErrorCode = "COOLDOWN_ACTIVE"
	ErrCodeCooldownStoreError ErrorCode = "COOLDOWN_STORE_ERROR"

	ErrCodeLLMTimeout       ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMCallFailed    ErrorCode = "LLM_CALL_FAILED"
	ErrCodeLLMInvalidOutput ErrorCode = "LLM_INVALID_OUTPUT"

	ErrCodeVaultInsertFailed    ErrorCode = "VAULT_INSERT_FAILED"
	ErrCodeSearchIndexFailed    ErrorCode = "SEARCH_INDEX_FAILED"
	ErrCodeWebhookDeliveryError ErrorCode = "WEBHOOK_DELIVERY_ERROR"
	ErrCodeNotificationFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeQueueFull ErrorCode = "QUEUE_FULL"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func Wrap(code ErrorCode, message string, cause error) *StandardError {
	e := New(code, message)
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// CodeOf extracts the error code from an error chain, or empty when the
// error is not a StandardError.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Code
	}
	return ""
}
