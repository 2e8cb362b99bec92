package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the pipeline can map it to a fixed reply.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidURL
	KindCaptionsDisabled
	KindCaptionsUnavailable
	KindVideoUnreachable
	KindSummaryUnavailable
	KindInputTooLarge
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindCaptionsDisabled:
		return "captions_disabled"
	case KindCaptionsUnavailable:
		return "captions_unavailable"
	case KindVideoUnreachable:
		return "video_unreachable"
	case KindSummaryUnavailable:
		return "summary_unavailable"
	case KindInputTooLarge:
		return "input_too_large"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

type AppError struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, op string, err error, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidURL(op string, err error, message string) *AppError {
	return New(KindInvalidURL, op, err, message)
}

func CaptionsDisabled(op string, err error, message string) *AppError {
	return New(KindCaptionsDisabled, op, err, message)
}

func CaptionsUnavailable(op string, err error, message string) *AppError {
	return New(KindCaptionsUnavailable, op, err, message)
}

func VideoUnreachable(op string, err error, message string) *AppError {
	return New(KindVideoUnreachable, op, err, message)
}

func SummaryUnavailable(op string, err error, message string) *AppError {
	return New(KindSummaryUnavailable, op, err, message)
}

func InputTooLarge(op string, err error, message string) *AppError {
	return New(KindInputTooLarge, op, err, message)
}

func RateLimited(op string, err error, message string) *AppError {
	return New(KindRateLimited, op, err, message)
}

func Internal(op string, err error, message string) *AppError {
	return New(KindInternal, op, err, message)
}

// KindOf reports the classification of err, unwrapping as needed.
// Plain errors report KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
