package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidRequest         ErrorCode = "INVALID_REQUEST"
	ErrorCodeUnsupportedURL         ErrorCode = "UNSUPPORTED_URL"
	ErrorCodePlatformNotImplemented ErrorCode = "PLATFORM_NOT_IMPLEMENTED"
	ErrorCodeContentNotFound        ErrorCode = "CONTENT_NOT_FOUND"
	ErrorCodeAuthRequired           ErrorCode = "AUTH_REQUIRED"
	ErrorCodeAgeRestricted          ErrorCode = "AGE_RESTRICTED"
	ErrorCodeDRMProtected           ErrorCode = "DRM_PROTECTED"
	ErrorCodeToolUnavailable        ErrorCode = "TOOL_UNAVAILABLE"
	ErrorCodeExtractionFailed       ErrorCode = "EXTRACTION_FAILED"
	ErrorCodeNormalizationFailed    ErrorCode = "NORMALIZATION_FAILED"
	ErrorCodeScrapeFailed           ErrorCode = "SCRAPE_FAILED"
	ErrorCodeUpstreamTimeout        ErrorCode = "UPSTREAM_TIMEOUT"
	ErrorCodeRateLimited            ErrorCode = "RATE_LIMITED"
	ErrorCodeMissingURL             ErrorCode = "MISSING_URL"
	ErrorCodeStreamError            ErrorCode = "STREAM_ERROR"
	ErrorCodeBatchNotSupported      ErrorCode = "BATCH_NOT_SUPPORTED"
	ErrorCodeNotFound               ErrorCode = "NOT_FOUND"
	ErrorCodeServerError            ErrorCode = "SERVER_ERROR"
)

type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Common error constructors
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeInvalidRequest, message, http.StatusBadRequest, details)
}

func NewUnsupportedURLError(url string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeUnsupportedURL,
		"This URL is not from a supported platform",
		http.StatusBadRequest,
		map[string]interface{}{
			"url": url,
		},
	)
}

func NewPlatformNotImplementedError(platform string) *AppError {
	return NewError(
		ErrorCodePlatformNotImplemented,
		fmt.Sprintf("%s support is coming soon", platform),
		http.StatusNotImplemented,
	)
}

func NewContentNotFoundError() *AppError {
	return NewError(
		ErrorCodeContentNotFound,
		"Content not found or is private",
		http.StatusNotFound,
	)
}

func NewAuthRequiredError() *AppError {
	return NewError(
		ErrorCodeAuthRequired,
		"Login required to access this content",
		http.StatusUnauthorized,
	)
}

func NewAgeRestrictedError() *AppError {
	return NewError(
		ErrorCodeAgeRestricted,
		"Content is age-restricted or requires login",
		http.StatusForbidden,
	)
}

func NewDRMProtectedError() *AppError {
	return NewError(
		ErrorCodeDRMProtected,
		"This content is DRM protected and cannot be downloaded",
		http.StatusForbidden,
	)
}

func NewToolUnavailableError() *AppError {
	return NewError(
		ErrorCodeToolUnavailable,
		"Extraction tool is not installed or not in PATH",
		http.StatusInternalServerError,
	)
}

func NewExtractionError(detail string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeExtractionFailed,
		"Failed to extract content",
		http.StatusInternalServerError,
		map[string]interface{}{
			"detail": detail,
		},
	)
}

func NewNormalizationError() *AppError {
	return NewError(
		ErrorCodeNormalizationFailed,
		"Extraction tool returned malformed output",
		http.StatusInternalServerError,
	)
}

func NewScrapeError(message string) *AppError {
	return NewError(
		ErrorCodeScrapeFailed,
		message,
		http.StatusInternalServerError,
	)
}

func NewUpstreamTimeoutError() *AppError {
	return NewError(
		ErrorCodeUpstreamTimeout,
		"Upstream page fetch timed out",
		http.StatusGatewayTimeout,
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimited,
		"Too many requests, please try again later",
		http.StatusTooManyRequests,
	)
}

func NewMissingURLError() *AppError {
	return NewError(
		ErrorCodeMissingURL,
		"Video URL is required",
		http.StatusBadRequest,
	)
}

func NewStreamError(message string) *AppError {
	if message == "" {
		message = "Failed to get URL"
	}
	return NewError(
		ErrorCodeStreamError,
		message,
		http.StatusInternalServerError,
	)
}

func NewBatchNotSupportedError(platform string) *AppError {
	return NewError(
		ErrorCodeBatchNotSupported,
		fmt.Sprintf("Batch downloads are not supported for %s", platform),
		http.StatusBadRequest,
	)
}

func NewNotFoundError() *AppError {
	return NewError(
		ErrorCodeNotFound,
		"Route not found",
		http.StatusNotFound,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeServerError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
