package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type InsightErrorKind string

const (
	InsightErrNetwork   InsightErrorKind = "network"
	InsightErrTimeout   InsightErrorKind = "timeout"
	InsightErrCanceled  InsightErrorKind = "canceled"
	InsightErrAuth      InsightErrorKind = "auth"
	InsightErrRateLimit InsightErrorKind = "rate_limit"
	InsightErrTooLarge  InsightErrorKind = "too_large"
	InsightErrEmpty     InsightErrorKind = "empty_response"
	InsightErrUpstream  InsightErrorKind = "upstream"
)

// InsightError is returned when an insight could not be produced. It never aborts the
// dashboard; the section shows Message() instead of the insight text.
type InsightError struct {
	View string
	Kind InsightErrorKind
	Err  error
}

func (e *InsightError) Error() string {
	return fmt.Sprintf("insight for %s failed (%s): %v", e.View, e.Kind, e.Err)
}

func (e *InsightError) Unwrap() error { return e.Err }

// Message is the short inline text shown in place of the insight.
func (e *InsightError) Message() string {
	switch e.Kind {
	case InsightErrTimeout:
		return "Insight tidak tersedia: layanan AI tidak merespons tepat waktu."
	case InsightErrCanceled:
		return "Insight dibatalkan karena filter berubah."
	case InsightErrAuth:
		return "Insight tidak tersedia: kredensial layanan AI ditolak."
	case InsightErrRateLimit:
		return "Insight tidak tersedia: batas permintaan layanan AI tercapai, coba lagi nanti."
	case InsightErrTooLarge:
		return "Insight tidak tersedia: data terlalu besar untuk dianalisis."
	case InsightErrEmpty:
		return "Insight tidak tersedia: layanan AI tidak mengembalikan jawaban."
	default:
		return "Insight tidak tersedia: gagal menghubungi layanan AI."
	}
}

// statusError carries the HTTP status of a failed completion call.
type statusError struct {
	StatusCode int
	Err        error
}

func (e *statusError) Error() string {
	return fmt.Sprintf("completion service returned status %d: %v", e.StatusCode, e.Err)
}

func (e *statusError) Unwrap() error { return e.Err }

var errNoChoices = errors.New("completion returned no choices")

func classifyInsightError(view string, err error) *InsightError {
	var insightErr *InsightError
	if errors.As(err, &insightErr) {
		return insightErr
	}

	kind := InsightErrUpstream
	var status *statusError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = InsightErrTimeout
	case errors.Is(err, context.Canceled):
		kind = InsightErrCanceled
	case errors.Is(err, errNoChoices):
		kind = InsightErrEmpty
	case errors.As(err, &status):
		switch status.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusPaymentRequired:
			kind = InsightErrAuth
		case http.StatusTooManyRequests:
			kind = InsightErrRateLimit
		case http.StatusRequestEntityTooLarge:
			kind = InsightErrTooLarge
		}
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			kind = InsightErrTimeout
		} else {
			kind = InsightErrNetwork
		}
	}
	return &InsightError{View: view, Kind: kind, Err: err}
}
