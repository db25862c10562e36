package utils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// InitValidator 初始化验证器，并在gin的绑定引擎上注册自定义规则
func InitValidator() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("password", validatePassword)
	}
}

// GetValidator 获取验证器实例
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// validatePassword 密码强度：至少8位，包含字母和数字
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// ValidateStruct 验证结构体
func ValidateStruct(s interface{}) error {
	v := GetValidator()
	if err := v.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError 格式化验证错误
func formatValidationError(err error) error {
	var errs []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			var message string
			switch tag {
			case "required":
				message = fmt.Sprintf("%s是必填字段", field)
			case "min":
				message = fmt.Sprintf("%s长度不能小于%s", field, param)
			case "max":
				message = fmt.Sprintf("%s长度不能大于%s", field, param)
			case "gte":
				message = fmt.Sprintf("%s不能小于%s", field, param)
			case "lte":
				message = fmt.Sprintf("%s不能大于%s", field, param)
			case "email":
				message = fmt.Sprintf("%s必须是有效的邮箱地址", field)
			case "eqfield":
				message = fmt.Sprintf("%s两次输入不一致", field)
			case "password":
				message = fmt.Sprintf("%s至少8位且需包含字母和数字", field)
			default:
				message = fmt.Sprintf("%s验证失败: %s", field, tag)
			}

			errs = append(errs, message)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return err
}
