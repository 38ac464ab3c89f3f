package utils

import (
	"regexp"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ErrorResponse(c *gin.Context, message string, code int) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func SuccessResponse(c *gin.Context, message string, code int) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9\-]`)

// SanitizeName maps a free-text name to a filesystem-safe token.
// Every character outside [A-Za-z0-9-] becomes an underscore.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
