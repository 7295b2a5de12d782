package bookmark

import (
	"net/http"

	"github.com/Abraxas-365/devjobs/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("BOOKMARK")

var (
	CodeAlreadyBookmarked = ErrRegistry.Register("ALREADY_BOOKMARKED", errx.TypeConflict, http.StatusConflict, "Job posting is already bookmarked")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
	CodeIndividualOnly    = ErrRegistry.Register("INDIVIDUAL_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Only individual users can bookmark")
)

func ErrAlreadyBookmarked() *errx.Error {
	return ErrRegistry.New(CodeAlreadyBookmarked)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrIndividualOnly() *errx.Error {
	return ErrRegistry.New(CodeIndividualOnly)
}
