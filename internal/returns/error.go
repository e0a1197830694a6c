package returns

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeLoanNotFound       Code = "LOAN_NOT_FOUND"
	CodeEquipmentLookup    Code = "EQUIPMENT_LOOKUP_FAILED"
	CodeMissingCommitment  Code = "MISSING_COMMITMENT_DATE"
	CodePenaltyRequired    Code = "PENALTY_REQUIRED"
	CodeMalformedTimestamp Code = "MALFORMED_TIMESTAMP"
	CodeInternal           Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *APIError           { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError          { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrLoanNotFound(msg string) *APIError      { return &APIError{Code: CodeLoanNotFound, Message: msg} }
func ErrEquipmentLookup(msg string) *APIError   { return &APIError{Code: CodeEquipmentLookup, Message: msg} }
func ErrMissingCommitment(msg string) *APIError { return &APIError{Code: CodeMissingCommitment, Message: msg} }
func ErrPenaltyRequired(msg string) *APIError   { return &APIError{Code: CodePenaltyRequired, Message: msg} }
func ErrMalformedTimestamp(msg string) *APIError {
	return &APIError{Code: CodeMalformedTimestamp, Message: msg}
}
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

// ToHTTPStatus maps workflow errors at the handler boundary. Missing loans
// are 404 on lookup paths; the create handler downgrades that to 400 because
// there the loan id is request payload, not a resource path.
func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeNotFound, CodeLoanNotFound:
			return http.StatusNotFound
		case CodeInternal:
			return http.StatusInternalServerError
		default:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
