package api

import (
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// Envelope is the uniform response body
type Envelope struct {
	Data       any    `json:"data"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
}

// Success writes a success envelope
func Success(ctx router.Context, status int, data any, message string) error {
	return ctx.JSON(status, Envelope{
		Data:       data,
		Message:    message,
		StatusCode: status,
		Success:    true,
	})
}

// Failure maps an error to its envelope. Validation failures render 422
// with a field detail, categorized errors use their HTTP code, anything
// unrecognized collapses to a 500.
func Failure(ctx router.Context, err error) error {
	status, message := classify(err)
	return ctx.JSON(status, Envelope{
		Data:       nil,
		Message:    message,
		StatusCode: status,
		Success:    false,
	})
}

func classify(err error) (int, string) {
	var fieldErrors validation.Errors
	if goerrors.As(err, &fieldErrors) {
		return http.StatusUnprocessableEntity, formatValidationErrors(fieldErrors)
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return http.StatusInternalServerError, "Something went wrong"
	}

	status := statusFor(richErr)
	if status >= http.StatusInternalServerError {
		return status, "Something went wrong"
	}

	message := richErr.Message
	if !strings.HasPrefix(message, "Error: ") {
		message = "Error: " + message
	}

	return status, message
}

func statusFor(err *goerrors.Error) int {
	if err.Code >= http.StatusBadRequest {
		return err.Code
	}

	switch err.Category {
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryValidation:
		return http.StatusUnprocessableEntity
	case goerrors.CategoryConflict, goerrors.CategoryNotFound, goerrors.CategoryBadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// formatValidationErrors renders the first failing field, keyed
// deterministically
func formatValidationErrors(errs validation.Errors) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fieldErr := errs[field]
		if fieldErr == nil {
			continue
		}

		code := "validation"
		if coded, ok := fieldErr.(validation.Error); ok {
			code = coded.Code()
		}

		return "Error: " + code + ": " + field + " field value is invalid: " + fieldErr.Error()
	}

	return "Error: validation failed"
}
