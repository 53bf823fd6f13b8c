package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	courseservice "github.com/minglangedu/website/internal/service/course"
	galleryservice "github.com/minglangedu/website/internal/service/gallery"
)

// SiteHandler 公开页面处理器
type SiteHandler struct {
	courseService  courseservice.CourseService
	galleryService galleryservice.GalleryService
}

// NewSiteHandler 创建公开页面处理器实例
func NewSiteHandler(courseService courseservice.CourseService, galleryService galleryservice.GalleryService) *SiteHandler {
	return &SiteHandler{
		courseService:  courseService,
		galleryService: galleryService,
	}
}

// Home 首页
func (h *SiteHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "home.html", gin.H{
		"Title": "Home",
	})
}

// About 关于页
func (h *SiteHandler) About(c *gin.Context) {
	render(c, http.StatusOK, "about.html", gin.H{
		"Title": "About",
	})
}

// Courses 课程列表页
func (h *SiteHandler) Courses(c *gin.Context) {
	courses, err := h.courseService.ListCourses()
	if err != nil {
		render(c, http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Error",
			"Message": "Failed to load courses.",
		})
		return
	}
	render(c, http.StatusOK, "course.html", gin.H{
		"Title":   "Courses",
		"Courses": courses,
	})
}

// Gallery 相册页
func (h *SiteHandler) Gallery(c *gin.Context) {
	items, err := h.galleryService.ListItems()
	if err != nil {
		render(c, http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Error",
			"Message": "Failed to load gallery.",
		})
		return
	}
	render(c, http.StatusOK, "gallery.html", gin.H{
		"Title":   "Gallery",
		"Gallery": items,
	})
}
