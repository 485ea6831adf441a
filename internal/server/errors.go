package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
	markupdomain "github.com/wouldcart/triplexa/internal/markup/domain"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	proposaldomain "github.com/wouldcart/triplexa/internal/proposal/domain"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	termsdomain "github.com/wouldcart/triplexa/internal/terms/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if sendErr := asSendValidation(err); sendErr != nil {
		payload := errorPayload{
			Type:    "validation_error",
			Message: "proposal not ready",
		}
		for _, reason := range sendErr.Reasons {
			payload.Errors = append(payload.Errors, ValidationError{
				Field:   "proposal",
				Code:    "proposal_not_ready",
				Message: reason,
			})
		}
		return http.StatusUnprocessableEntity, payload
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, termsdomain.ErrTemplateExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func asSendValidation(err error) *proposaldomain.ValidationErrors {
	var vErr *proposaldomain.ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, enquirydomain.ErrInvalidName),
		errors.Is(err, enquirydomain.ErrInvalidPax),
		errors.Is(err, enquirydomain.ErrInvalidBudget),
		errors.Is(err, enquirydomain.ErrInvalidTripDays),
		errors.Is(err, enquirydomain.ErrInvalidStatus),
		errors.Is(err, enquirydomain.ErrInvalidID),
		errors.Is(err, markupdomain.ErrInvalidName),
		errors.Is(err, markupdomain.ErrInvalidMarkupType),
		errors.Is(err, markupdomain.ErrInvalidMarkupValue),
		errors.Is(err, markupdomain.ErrInvalidRange),
		errors.Is(err, markupdomain.ErrInvalidCountryCode),
		errors.Is(err, markupdomain.ErrInvalidID),
		errors.Is(err, taxdomain.ErrInvalidName),
		errors.Is(err, taxdomain.ErrInvalidID),
		errors.Is(err, taxdomain.ErrInvalidCountryCode),
		errors.Is(err, taxdomain.ErrInvalidServiceType),
		errors.Is(err, taxdomain.ErrInvalidTaxMode),
		errors.Is(err, taxdomain.ErrInvalidTaxRate),
		errors.Is(err, termsdomain.ErrInvalidName),
		errors.Is(err, termsdomain.ErrInvalidID),
		errors.Is(err, pricingdomain.ErrInvalidEnquiry),
		errors.Is(err, proposaldomain.ErrInvalidEnquiry),
		errors.Is(err, proposaldomain.ErrInvalidMethod):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, enquirydomain.ErrNotFound),
		errors.Is(err, markupdomain.ErrNotFound),
		errors.Is(err, taxdomain.ErrNotFound),
		errors.Is(err, termsdomain.ErrTemplateMissing),
		errors.Is(err, pricingdomain.ErrEnquiryNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
