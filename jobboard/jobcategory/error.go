package jobcategory

import (
	"net/http"

	"github.com/Abraxas-365/devjobs/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOB_CATEGORY")

var (
	CodeCategoryNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job category not found")
	CodeCategoryAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job category already exists")
	CodeInvalidName           = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Job category name is required")
	CodeInvalidRequest        = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
	CodeAdminOnly             = ErrRegistry.Register("ADMIN_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Only administrators can manage categories")
)

func ErrCategoryNotFound() *errx.Error {
	return ErrRegistry.New(CodeCategoryNotFound)
}

func ErrCategoryAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeCategoryAlreadyExists)
}

func ErrInvalidName() *errx.Error {
	return ErrRegistry.New(CodeInvalidName)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrAdminOnly() *errx.Error {
	return ErrRegistry.New(CodeAdminOnly)
}
