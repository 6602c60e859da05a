package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response 统一响应结构 {message, status, data}
type Response struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Response{
		Message: msg,
		Status:  StatusSuccess,
		Data:    data,
	})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Response{
		Message: msg,
		Status:  StatusSuccess,
		Data:    data,
	})
}

func Fail(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, Response{
		Message: msg,
		Status:  StatusError,
	})
}
