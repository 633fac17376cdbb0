package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeOK                = 0
	CodeBadRequest        = 40000
	CodeUsernameExists    = 40001
	CodePasswordsMismatch = 40002
	CodeUnauthorized      = 40100
	CodeInvalidCredential = 40101
	CodeForbidden         = 40300
	CodeNotFound          = 40400
	CodeInternalServer    = 50000
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
