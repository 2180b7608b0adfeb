package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/logger"
)

// ErrorsResponse carries validation errors
type ErrorsResponse struct {
	Errors       []apperror.Error `json:"errors"`
	TotalRecords int              `json:"total_records"`
}

// MessageResponse carries an operational error
type MessageResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// ErrorResponseHandler writes err in the error payload matching its status.
// Errors without a status are logged and answered with a bare 500.
func ErrorResponseHandler(c echo.Context, err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		return c.JSON(echoErr.Code, MessageResponse{StatusCode: echoErr.Code, Message: msg})
	}

	he, ok := apperror.As(err)
	if !ok {
		logger.ErrorCtx(c.Request().Context(), "Unhandled error",
			logger.String("path", c.Request().URL.Path),
			logger.Err(err))
		return c.JSON(http.StatusInternalServerError, MessageResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    http.StatusText(http.StatusInternalServerError),
		})
	}

	if he.Status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request().Context(), "Request failed",
			logger.String("path", c.Request().URL.Path),
			logger.Err(err))
	}
	if len(he.Errors) > 0 {
		return c.JSON(he.Status, ErrorsResponse{Errors: he.Errors, TotalRecords: len(he.Errors)})
	}
	return c.JSON(he.Status, MessageResponse{StatusCode: he.Status, Message: he.Message})
}

// HTTPErrorHandler renders errors echo raises itself, such as unknown routes
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	_ = ErrorResponseHandler(c, err)
}

// BadRequestResponse answers 400 for an unreadable request body
func BadRequestResponse(c echo.Context, err error) error {
	logger.DebugCtx(c.Request().Context(), "Invalid request body", logger.Err(err))
	return ErrorResponseHandler(c, apperror.BadRequest(apperror.CodeInvalidPayload))
}

// pathID returns the :id path parameter once it is a valid UUID
func pathID(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperror.BadRequest(apperror.CodeInvalidID, apperror.Param("id", id))
	}
	return id, nil
}
