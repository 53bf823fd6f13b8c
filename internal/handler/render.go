// Package handler 提供网站的HTTP处理器
// 公开页面直接渲染，管理端操作完成后重定向，提示信息通过会话flash传递
package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/minglangedu/website/internal/logger"
	"github.com/minglangedu/website/internal/middleware"
)

// addFlash 向会话追加一条flash消息
func addFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		logger.Warnf("Failed to save session flash: %v", err)
	}
}

// popFlashes 取出并清空会话中的flash消息
func popFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) > 0 {
		if err := session.Save(); err != nil {
			logger.Warnf("Failed to save session after reading flashes: %v", err)
		}
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

// render 渲染HTML页面
// 自动注入flash消息和登录状态
func render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = popFlashes(c)
	data["Authenticated"] = middleware.IsAuthenticated(c)
	c.HTML(status, template, data)
}

// notFound 渲染404页面
func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not Found",
		"Message": "The requested resource does not exist.",
	})
}

// parseID 解析路径中的记录ID，非法值返回false
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// openFormFile 打开multipart表单中的上传文件
// 返回的ReadCloser由调用方负责关闭
func openFormFile(fh *multipart.FileHeader) (io.ReadCloser, error) {
	return fh.Open()
}
