package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/minglangedu/website/internal/errors"
	courseservice "github.com/minglangedu/website/internal/service/course"
)

// CourseHandler 管理端课程处理器
type CourseHandler struct {
	courseService courseservice.CourseService
}

// NewCourseHandler 创建课程处理器实例
func NewCourseHandler(courseService courseservice.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// courseImageFromForm 从表单中提取可选的课程图片
// 未上传文件时返回nil，调用方负责在请求结束前使用完数据流
func (h *CourseHandler) courseImageFromForm(c *gin.Context) (*courseservice.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil || fh.Filename == "" {
		return nil, func() {}, nil
	}

	src, err := openFormFile(fh)
	if err != nil {
		return nil, func() {}, err
	}

	return &courseservice.ImageUpload{
		FileName: fh.Filename,
		Data:     src,
	}, func() { src.Close() }, nil
}

// createCourse 从表单创建课程，AddCourse和ManageCourses共用
func (h *CourseHandler) createCourse(c *gin.Context) error {
	image, closeFn, err := h.courseImageFromForm(c)
	if err != nil {
		return apperrors.ErrFileUploadFailedError
	}
	defer closeFn()

	_, err = h.courseService.CreateCourse(&courseservice.CreateCourseRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Image:       image,
	})
	return err
}

// AddCourse 创建课程后跳转到课程管理页
func (h *CourseHandler) AddCourse(c *gin.Context) {
	if err := h.createCourse(c); err != nil {
		addFlash(c, flashMessage(err, "Failed to add course."))
	}
	c.Redirect(http.StatusFound, "/admin/manage_courses")
}

// ManageCourses 课程管理页
func (h *CourseHandler) ManageCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses()
	if err != nil {
		render(c, http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Error",
			"Message": "Failed to load courses.",
		})
		return
	}
	render(c, http.StatusOK, "manage_courses.html", gin.H{
		"Title":   "Manage Courses",
		"Courses": courses,
	})
}

// ManageCoursesCreate 课程管理页的创建表单提交，完成后回到同一页面
func (h *CourseHandler) ManageCoursesCreate(c *gin.Context) {
	if err := h.createCourse(c); err != nil {
		addFlash(c, flashMessage(err, "Failed to add course."))
	} else {
		addFlash(c, "Course added successfully!")
	}
	c.Redirect(http.StatusFound, "/admin/manage_courses")
}

// EditCourseForm 渲染课程编辑表单，记录不存在时返回404
func (h *CourseHandler) EditCourseForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	course, err := h.courseService.GetCourseByID(id)
	if err != nil {
		notFound(c)
		return
	}

	render(c, http.StatusOK, "edit_course.html", gin.H{
		"Title":  "Edit Course",
		"Course": course,
	})
}

// EditCourse 更新课程后跳转到课程管理页
func (h *CourseHandler) EditCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	image, closeFn, err := h.courseImageFromForm(c)
	if err != nil {
		addFlash(c, "Failed to read uploaded image.")
		c.Redirect(http.StatusFound, "/admin/manage_courses")
		return
	}
	defer closeFn()

	_, err = h.courseService.UpdateCourse(id, &courseservice.UpdateCourseRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Image:       image,
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrRecordNotFound) {
			notFound(c)
			return
		}
		addFlash(c, flashMessage(err, "Failed to update course."))
	}
	c.Redirect(http.StatusFound, "/admin/manage_courses")
}

// DeleteCourse 删除课程后跳转到课程管理页
// 重复删除同一条记录只是flash提示，不会中断请求
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	if err := h.courseService.DeleteCourse(id); err != nil {
		if apperrors.IsCode(err, apperrors.ErrRecordNotFound) {
			addFlash(c, "Course not found.")
		} else {
			addFlash(c, "Failed to delete course.")
		}
	}
	c.Redirect(http.StatusFound, "/admin/manage_courses")
}

// flashMessage 把应用错误转换成用户可见的提示
func flashMessage(err error, fallback string) string {
	if appErr, ok := apperrors.GetAppError(err); ok {
		return appErr.Message
	}
	return fallback
}
