package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/minglangedu/website/internal/logger"
	"github.com/minglangedu/website/internal/middleware"
	authservice "github.com/minglangedu/website/internal/service/auth"
)

// AuthHandler 管理员登录登出处理器
type AuthHandler struct {
	authService authservice.AuthService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(authService authservice.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ShowLogin 渲染登录表单
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Admin Login",
	})
}

// Login 校验凭证并建立管理员会话
// 失败时flash提示并回到登录页；重复登录只是重置会话标记
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	admin, err := h.authService.Authenticate(username, password)
	if err != nil {
		logger.WithField("username", username).Warn("Admin login failed")
		addFlash(c, "Invalid Credentials")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionKeyAdmin, admin.Username)
	if err := session.Save(); err != nil {
		logger.Errorf("Failed to save admin session: %v", err)
		addFlash(c, "Login failed, please try again.")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	logger.Infof("Admin %s logged in", admin.Username)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 清除管理员会话
// 对未登录的会话也是安全的空操作
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionKeyAdmin)
	if err := session.Save(); err != nil {
		logger.Warnf("Failed to save session on logout: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}
