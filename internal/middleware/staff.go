package middleware

import (
	"newsgo/internal/utils"

	"github.com/gin-gonic/gin"
)

// StaffMiddleware 员工权限中间件，管理端路由使用
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			utils.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}
