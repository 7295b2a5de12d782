package application

import (
	"net/http"

	"github.com/Abraxas-365/devjobs/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("APPLICATION")

var (
	CodeApplicationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeAlreadyApplied      = ErrRegistry.Register("ALREADY_APPLIED", errx.TypeConflict, http.StatusConflict, "Already applied to this job posting")
	CodeInvalidStatus       = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid application status")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
	CodeNotApplicationOwner = ErrRegistry.Register("NOT_APPLICATION_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Application belongs to another user")
	CodeNotPostingOwner     = ErrRegistry.Register("NOT_POSTING_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Job posting belongs to another company")
	CodeIndividualOnly      = ErrRegistry.Register("INDIVIDUAL_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Only individual users can apply")
	CodeCompanyOnly         = ErrRegistry.Register("COMPANY_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Only companies can review applications")
)

func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrAlreadyApplied() *errx.Error {
	return ErrRegistry.New(CodeAlreadyApplied)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrNotApplicationOwner() *errx.Error {
	return ErrRegistry.New(CodeNotApplicationOwner)
}

func ErrNotPostingOwner() *errx.Error {
	return ErrRegistry.New(CodeNotPostingOwner)
}

func ErrIndividualOnly() *errx.Error {
	return ErrRegistry.New(CodeIndividualOnly)
}

func ErrCompanyOnly() *errx.Error {
	return ErrRegistry.New(CodeCompanyOnly)
}
