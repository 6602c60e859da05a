package middleware

import (
	"Fundoo/types"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 注册请求体的自定义校验规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		return err
	}
	return v.RegisterValidation("access", validateAccess)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateAccess(fl validator.FieldLevel) bool {
	return types.AccessLevel(fl.Field().String()).Valid()
}
