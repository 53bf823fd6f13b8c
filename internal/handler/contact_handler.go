package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/minglangedu/website/internal/errors"
	contactservice "github.com/minglangedu/website/internal/service/contact"
)

// ContactHandler 联系表单处理器
type ContactHandler struct {
	contactService contactservice.ContactService
}

// NewContactHandler 创建联系表单处理器实例
func NewContactHandler(contactService contactservice.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ShowForm 渲染联系表单
func (h *ContactHandler) ShowForm(c *gin.Context) {
	render(c, http.StatusOK, "contact.html", gin.H{
		"Title": "Contact",
	})
}

// Submit 提交留言
// 成功后flash提示并重定向回表单页
func (h *ContactHandler) Submit(c *gin.Context) {
	req := &contactservice.CreateMessageRequest{
		Name:    c.PostForm("name"),
		Phone:   c.PostForm("phone"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	if _, err := h.contactService.CreateMessage(req); err != nil {
		if apperrors.IsCode(err, apperrors.ErrInvalidParams) {
			addFlash(c, "Please fill in name, phone and message.")
		} else {
			addFlash(c, "Failed to send message, please try again later.")
		}
		c.Redirect(http.StatusFound, "/contact")
		return
	}

	addFlash(c, "Message sent successfully!")
	c.Redirect(http.StatusFound, "/contact")
}
