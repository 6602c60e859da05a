package context

import (
	"Fundoo/pkg/log"
	"Fundoo/pkg/response"
	"Fundoo/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			log.L.Error("unhandled error",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}
}

// SetUser 由鉴权中间件写入当前用户
func SetUser(c *gin.Context, id uint64, email string) {
	c.Set(CtxUserID, id)
	c.Set(CtxUserEmail, email)
}

func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id 不存在")
	}

	uid, ok := v.(uint64)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

func GetUserEmail(c *gin.Context) string {
	return c.GetString(CtxUserEmail)
}

// GetActor 当前请求的用户
func GetActor(c *gin.Context) (types.Actor, error) {
	uid, err := GetUserID(c)
	if err != nil {
		return types.Actor{}, err
	}
	return types.Actor{ID: uid, Email: GetUserEmail(c)}, nil
}
