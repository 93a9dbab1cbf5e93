// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the engine's error taxonomy.
var (
	// ErrMandatoryDataUnavailable means the catalog or the seller directory
	// could not be read. The entire ranking call aborts; callers may retry.
	ErrMandatoryDataUnavailable = errors.New("mandatory ranking data unavailable")

	// ErrInvalidFilter means the request filter failed validation. The call
	// is rejected before any provider is contacted.
	ErrInvalidFilter = errors.New("invalid ranking filter")
)

// MandatoryDataError wraps a mandatory-provider failure with the provider
// name for logging and for the retryable classification.
type MandatoryDataError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *MandatoryDataError) Error() string {
	return fmt.Sprintf("mandatory ranking data unavailable: %s: %v", e.Provider, e.Err)
}

// Unwrap exposes both the sentinel and the underlying provider error to
// errors.Is/As chains.
func (e *MandatoryDataError) Unwrap() []error {
	return []error{ErrMandatoryDataUnavailable, e.Err}
}

// Retryable reports that the failure is transient from the caller's point
// of view: the snapshot could not be assembled, nothing was computed.
func (e *MandatoryDataError) Retryable() bool { return true }

// mandatoryErr builds a MandatoryDataError for the named provider.
func mandatoryErr(provider string, err error) error {
	return &MandatoryDataError{Provider: provider, Err: err}
}

// IsRetryable reports whether err represents a transient failure the caller
// should retry, as opposed to a rejected request.
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

// invalidFilterf wraps ErrInvalidFilter with a human-readable detail.
func invalidFilterf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFilter, fmt.Sprintf(format, args...))
}
