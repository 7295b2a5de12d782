package jobposting

import (
	"net/http"

	"github.com/Abraxas-365/devjobs/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOB_POSTING")

var (
	CodePostingNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job posting not found")
	CodeInvalidRequest  = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
	CodeInvalidStatus   = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid job posting status")
	CodeInvalidDeadline = ErrRegistry.Register("INVALID_DEADLINE", errx.TypeValidation, http.StatusBadRequest, "Deadline must be a date formatted YYYY-MM-DD")
	CodeMissingField    = ErrRegistry.Register("MISSING_FIELD", errx.TypeValidation, http.StatusBadRequest, "Required field is missing")
	CodeNotOwner        = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Job posting belongs to another company")
	CodeCompanyOnly     = ErrRegistry.Register("COMPANY_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Only companies can publish job postings")
)

func ErrPostingNotFound() *errx.Error {
	return ErrRegistry.New(CodePostingNotFound)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidDeadline() *errx.Error {
	return ErrRegistry.New(CodeInvalidDeadline)
}

func ErrMissingField() *errx.Error {
	return ErrRegistry.New(CodeMissingField)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrCompanyOnly() *errx.Error {
	return ErrRegistry.New(CodeCompanyOnly)
}
