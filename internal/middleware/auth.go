package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionKeyAdmin 会话中管理员标记的键
// 登录成功后存入管理员用户名，登出时删除
const SessionKeyAdmin = "admin"

// LoginPath 未认证请求被重定向到的登录页路径
const LoginPath = "/admin/login"

// RequireAdmin 管理员会话守卫
// 会话中没有管理员标记的请求一律重定向到登录页，而不是返回错误响应
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(SessionKeyAdmin) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAuthenticated 判断当前请求是否携带管理员会话
func IsAuthenticated(c *gin.Context) bool {
	return sessions.Default(c).Get(SessionKeyAdmin) != nil
}
