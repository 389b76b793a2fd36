package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps a domain error onto the right HTTP status. Anything that
// is not an AppError is treated as internal.
func Respond(c *gin.Context, err error) {
	ae, ok := AsApp(err)
	if !ok {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch ae.Kind {
	case KindValidation:
		BadRequest(c, ae.Code, ae.Message)
	case KindNotFound:
		NotFound(c, ae.Code, ae.Message)
	case KindForbidden:
		Forbidden(c, ae.Code, ae.Message)
	case KindConflict, KindInvalidTransition:
		Conflict(c, ae.Code, ae.Message)
	default:
		Internal(c, ae.Code, ae.Message)
	}
}
