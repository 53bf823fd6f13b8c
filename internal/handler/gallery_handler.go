package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/minglangedu/website/internal/errors"
	galleryservice "github.com/minglangedu/website/internal/service/gallery"
)

// GalleryHandler 管理端相册处理器
type GalleryHandler struct {
	galleryService galleryservice.GalleryService
}

// NewGalleryHandler 创建相册处理器实例
func NewGalleryHandler(galleryService galleryservice.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// mediaFromForm 从表单中提取可选的媒体文件
func (h *GalleryHandler) mediaFromForm(c *gin.Context) (*galleryservice.MediaUpload, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Filename == "" {
		return nil, func() {}, nil
	}

	src, err := openFormFile(fh)
	if err != nil {
		return nil, func() {}, err
	}

	return &galleryservice.MediaUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        src,
	}, func() { src.Close() }, nil
}

// createItem 从表单创建相册条目，AddItem和ManageGallery共用
func (h *GalleryHandler) createItem(c *gin.Context) error {
	media, closeFn, err := h.mediaFromForm(c)
	if err != nil {
		return apperrors.ErrFileUploadFailedError
	}
	defer closeFn()

	_, err = h.galleryService.CreateItem(&galleryservice.CreateItemRequest{
		Description: c.PostForm("description"),
		File:        media,
	})
	return err
}

// AddItem 创建相册条目后跳转到控制台
func (h *GalleryHandler) AddItem(c *gin.Context) {
	if err := h.createItem(c); err != nil {
		addFlash(c, flashMessage(err, "Failed to add gallery item."))
	}
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// ManageGallery 相册管理页
func (h *GalleryHandler) ManageGallery(c *gin.Context) {
	items, err := h.galleryService.ListItems()
	if err != nil {
		render(c, http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Error",
			"Message": "Failed to load gallery.",
		})
		return
	}
	render(c, http.StatusOK, "manage_gallery.html", gin.H{
		"Title":   "Manage Gallery",
		"Gallery": items,
	})
}

// ManageGalleryCreate 相册管理页的创建表单提交，完成后回到同一页面
func (h *GalleryHandler) ManageGalleryCreate(c *gin.Context) {
	if err := h.createItem(c); err != nil {
		addFlash(c, flashMessage(err, "Failed to add gallery item."))
	} else {
		addFlash(c, "Gallery item added successfully!")
	}
	c.Redirect(http.StatusFound, "/admin/manage_gallery")
}

// EditItemForm 渲染相册条目编辑表单，记录不存在时返回404
func (h *GalleryHandler) EditItemForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	item, err := h.galleryService.GetItemByID(id)
	if err != nil {
		notFound(c)
		return
	}

	render(c, http.StatusOK, "edit_gallery.html", gin.H{
		"Title": "Edit Gallery Item",
		"Item":  item,
	})
}

// EditItem 更新相册条目后跳转到相册管理页
func (h *GalleryHandler) EditItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	media, closeFn, err := h.mediaFromForm(c)
	if err != nil {
		addFlash(c, "Failed to read uploaded file.")
		c.Redirect(http.StatusFound, "/admin/manage_gallery")
		return
	}
	defer closeFn()

	_, err = h.galleryService.UpdateItem(id, &galleryservice.UpdateItemRequest{
		Description: c.PostForm("description"),
		File:        media,
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrRecordNotFound) {
			notFound(c)
			return
		}
		addFlash(c, flashMessage(err, "Failed to update gallery item."))
	}
	c.Redirect(http.StatusFound, "/admin/manage_gallery")
}

// DeleteItem 删除相册条目后跳转到相册管理页
func (h *GalleryHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	if err := h.galleryService.DeleteItem(id); err != nil {
		if apperrors.IsCode(err, apperrors.ErrRecordNotFound) {
			addFlash(c, "Gallery item not found.")
		} else {
			addFlash(c, "Failed to delete gallery item.")
		}
	}
	c.Redirect(http.StatusFound, "/admin/manage_gallery")
}
