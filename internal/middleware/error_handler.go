package middleware

import (
	"fmt"
	"net/http"

	"makeItSell/pkg/logger"
	jsonres "makeItSell/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the fallback echo error handler for anything the
// handlers did not translate themselves.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}

	logger.Error("http error", "path", c.Path(), "status", code, "error", err)

	if jsonErr := c.JSON(code, jsonres.Error("ERROR", message, nil)); jsonErr != nil {
		logger.Error("failed to write error response", jsonErr)
	}
}
