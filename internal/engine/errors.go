package engine

import (
	"errors"
	"fmt"
)

// ContractError reports a pipeline-contract violation: an input state that
// the validator or an earlier stage guarantees impossible. These indicate
// a defect in the caller or an upstream stage, not bad source data, so
// they fail loudly instead of being logged and skipped.
//
// Contract violations include:
//   - A period with no admission date and no release date reaching the
//     chronological sort
//   - A placeholder (identity-less) period reaching the comparator
//   - Collapse invoked on a list not sorted by admission date
type ContractError struct {
	// Code identifies the violation category.
	Code ContractErrorCode

	// Message is a human-readable description.
	Message string

	// PeriodID identifies the offending period, when one exists.
	PeriodID string
}

// ContractErrorCode categorizes contract violations.
type ContractErrorCode string

const (
	// ErrCodeMissingDates indicates a period with neither an admission nor
	// a release date reached the sort or inference stage.
	ErrCodeMissingDates ContractErrorCode = "MISSING_DATES"

	// ErrCodePlaceholder indicates an identity-less period reached a stage
	// that requires the identity tie-break key.
	ErrCodePlaceholder ContractErrorCode = "PLACEHOLDER_PERIOD"

	// ErrCodeUnsortedInput indicates collapse was invoked on a list not in
	// ascending admission-date order.
	ErrCodeUnsortedInput ContractErrorCode = "UNSORTED_INPUT"

	// ErrCodeInferenceIncomplete indicates a period left inference still
	// missing a required date.
	ErrCodeInferenceIncomplete ContractErrorCode = "INFERENCE_INCOMPLETE"
)

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.PeriodID != "" {
		return fmt.Sprintf("%s: %s (period=%s)", e.Code, e.Message, e.PeriodID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsContractError reports whether err is (or wraps) a ContractError.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// newContractError builds a ContractError.
func newContractError(code ContractErrorCode, periodID, format string, args ...any) *ContractError {
	return &ContractError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		PeriodID: periodID,
	}
}
