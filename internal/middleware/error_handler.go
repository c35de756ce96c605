package middleware

import (
	"net/http"

	"myOysterGuide/pkg/logger"
	jsonres "myOysterGuide/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the central echo error handler for errors that escape
// the handlers.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err, "path", c.Request().URL.Path)
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
