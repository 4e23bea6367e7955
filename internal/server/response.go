package server

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/intelligence"
	"github.com/alexanderramin/studycal/internal/repository"
	"github.com/alexanderramin/studycal/internal/service"
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API reply that is not a file.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error codes carried in Response.Code.
const (
	codeOK             = "ok"
	codeParse          = "parse_error"
	codeValidation     = "validation_error"
	codeConfiguration  = "configuration_error"
	codeNotFound       = "not_found"
	codeAmbiguous      = "ambiguous_id"
	codeTooLarge       = "payload_too_large"
	codeNotImplemented = "not_implemented"
	codeUnprocessable  = "unprocessable"
	codeInternal       = "internal_error"
)

// OK writes a 200 envelope around data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: codeOK, Message: "success", Data: data})
}

// Created writes a 201 envelope around data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Code: codeOK, Message: "success", Data: data})
}

// Error writes an error envelope.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{Code: code, Message: message})
}

// errUploadTooLarge is returned when one uploaded file exceeds its own cap.
var errUploadTooLarge = errors.New("uploaded file too large")

// writeError maps err onto an HTTP status and writes the envelope. Errors
// that are not part of the domain taxonomy become an opaque 500.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes), errors.Is(err, errUploadTooLarge):
		Error(c, http.StatusRequestEntityTooLarge, codeTooLarge, err.Error())
	case errors.Is(err, domain.ErrParse):
		Error(c, http.StatusBadRequest, codeParse, err.Error())
	case errors.Is(err, domain.ErrValidation):
		Error(c, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		Error(c, http.StatusUnprocessableEntity, codeConfiguration, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		Error(c, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, repository.ErrAmbiguous):
		Error(c, http.StatusBadRequest, codeAmbiguous, err.Error())
	case errors.Is(err, service.ErrExtractionDisabled), errors.Is(err, service.ErrStorageDisabled):
		Error(c, http.StatusNotImplemented, codeNotImplemented, err.Error())
	case errors.Is(err, intelligence.ErrNothingExtracted):
		Error(c, http.StatusUnprocessableEntity, codeUnprocessable, err.Error())
	default:
		Error(c, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
