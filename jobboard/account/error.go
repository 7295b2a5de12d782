package account

import (
	"net/http"

	"github.com/Abraxas-365/devjobs/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ACCOUNT")

var (
	CodeUserNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeIndividualNotFound = ErrRegistry.Register("INDIVIDUAL_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Individual user not found")
	CodeCompanyNotFound    = ErrRegistry.Register("COMPANY_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Company not found")
)

func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrIndividualNotFound() *errx.Error {
	return ErrRegistry.New(CodeIndividualNotFound)
}

func ErrCompanyNotFound() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotFound)
}
