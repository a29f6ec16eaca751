package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeInvalidRequest,
		Message: MsgInvalidRequestBody,
	})
}

// InvalidFilter writes a 400 Bad Request response for a filter that failed
// validation, including an example of correct usage.
func InvalidFilter(c echo.Context, message string, example interface{}) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeInvalidFilter,
		Message: message,
		Example: example,
	})
}

// NotFound writes a 404 Not Found response.
func NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, &ErrorDetail{
		Code:    CodeNotFound,
		Message: MsgNotFound,
	})
}

// ComposeFailure writes a 500 Internal Server Error response for a backing
// store query failure.
func ComposeFailure(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, &ErrorDetail{
		Code:    CodeComposeFailure,
		Message: MsgComposeFailure,
	})
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, &ErrorDetail{
		Code:    CodeInternalError,
		Message: MsgInternalError,
	})
}
