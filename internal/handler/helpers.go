package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"daily-reconciliation/internal/config"
	"daily-reconciliation/internal/domain"
	"daily-reconciliation/internal/usecase"
)

var validate = validator.New()

// APIError is the error envelope of every 4xx/5xx response.
type APIError struct {
	Detail string `json:"detail"`
}

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

// bindAndValidate binds the JSON body and runs the validator tags.
// It writes the error response and returns false when the request is invalid.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Detail: "invalid JSON: " + err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, APIError{Detail: err.Error()})
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, ValidationError{Detail: "validation error", Fields: fields})
		return false
	}
	return true
}

// dayParams reads the :date and :mode path parameters.
func dayParams(c *gin.Context) (time.Time, domain.Mode, bool) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Detail: "date must be formatted YYYY-MM-DD"})
		return time.Time{}, "", false
	}
	mode := domain.Mode(c.Param("mode"))
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, APIError{Detail: "mode must be real or declared"})
		return time.Time{}, "", false
	}
	return date, mode, true
}

var errorStatus = []struct {
	err    error
	status int
}{
	{usecase.ErrNoSession, http.StatusNotFound},
	{usecase.ErrInvalidMode, http.StatusBadRequest},
	{usecase.ErrUnknownField, http.StatusUnprocessableEntity},
	{usecase.ErrFieldLocked, http.StatusConflict},
	{usecase.ErrRecordSynced, http.StatusConflict},
	{usecase.ErrDateLocked, http.StatusConflict},
	{usecase.ErrTargetInvalid, http.StatusConflict},
}

// writeError maps usecase errors to a status. Anything unexpected is logged
// and answered with a generic 500 so store errors do not leak.
func writeError(c *gin.Context, logger *logrus.Logger, funcName string, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, APIError{Detail: err.Error()})
			return
		}
	}
	config.LogError(logger, "handler", funcName, c.Request.URL.Path, nil, err)
	c.JSON(http.StatusInternalServerError, APIError{Detail: "internal error"})
}
