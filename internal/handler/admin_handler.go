package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactservice "github.com/minglangedu/website/internal/service/contact"
	courseservice "github.com/minglangedu/website/internal/service/course"
	galleryservice "github.com/minglangedu/website/internal/service/gallery"
)

// AdminHandler 管理端聚合页面处理器
type AdminHandler struct {
	courseService  courseservice.CourseService
	galleryService galleryservice.GalleryService
	contactService contactservice.ContactService
}

// NewAdminHandler 创建管理端处理器实例
func NewAdminHandler(
	courseService courseservice.CourseService,
	galleryService galleryservice.GalleryService,
	contactService contactservice.ContactService,
) *AdminHandler {
	return &AdminHandler{
		courseService:  courseService,
		galleryService: galleryService,
		contactService: contactService,
	}
}

// Dashboard 控制台页面
// 汇总课程、相册和按时间降序的留言
func (h *AdminHandler) Dashboard(c *gin.Context) {
	courses, err := h.courseService.ListCourses()
	if err != nil {
		h.renderError(c)
		return
	}
	items, err := h.galleryService.ListItems()
	if err != nil {
		h.renderError(c)
		return
	}
	messages, err := h.contactService.ListMessages()
	if err != nil {
		h.renderError(c)
		return
	}

	render(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"Title":    "Dashboard",
		"Courses":  courses,
		"Gallery":  items,
		"Messages": messages,
	})
}

// ContactMessages 留言列表页面，按创建时间降序
func (h *AdminHandler) ContactMessages(c *gin.Context) {
	messages, err := h.contactService.ListMessages()
	if err != nil {
		h.renderError(c)
		return
	}
	render(c, http.StatusOK, "contact_messages.html", gin.H{
		"Title":    "Contact Messages",
		"Messages": messages,
	})
}

func (h *AdminHandler) renderError(c *gin.Context) {
	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Error",
		"Message": "Failed to load admin data.",
	})
}
