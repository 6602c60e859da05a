package response

import (
	"Fundoo/pkg/log"
	"Fundoo/pkg/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BizError 业务错误，Code 即 HTTP 状态码
type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// Recovery 捕获 panic，记录堆栈并返回通用 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("panic recovered",
					zap.String("path", c.Request.URL.Path),
					zap.String("trace", utils.PanicTrace(r)),
				)
				Abort(c, http.StatusInternalServerError, "Internal server error")
			}
		}()

		c.Next()
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Message: msg,
		Status:  StatusError,
	})
}
