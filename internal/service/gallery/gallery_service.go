// Package gallery 提供相册管理的业务逻辑服务
// 相册条目的媒体类型在上传时根据声明的MIME类型推断
package gallery

import (
	"errors"
	"io"

	"gorm.io/gorm"

	"github.com/minglangedu/website/internal/database"
	apperrors "github.com/minglangedu/website/internal/errors"
	"github.com/minglangedu/website/internal/logger"
	storageservice "github.com/minglangedu/website/internal/service/storage"
)

// MediaUpload 相册媒体上传内容
type MediaUpload struct {
	FileName    string    // 客户端原始文件名
	ContentType string    // 声明的MIME类型，用于推断image/video
	Data        io.Reader // 文件数据流
}

// CreateItemRequest 创建相册条目请求，文件必传
type CreateItemRequest struct {
	Description string
	File        *MediaUpload
}

// UpdateItemRequest 更新相册条目请求
// File为nil时仅更新描述
type UpdateItemRequest struct {
	Description string
	File        *MediaUpload
}

// GalleryService 相册服务接口
type GalleryService interface {
	// CreateItem 创建相册条目
	// MIME类型不是image/*或video/*时拒绝创建
	CreateItem(req *CreateItemRequest) (*database.GalleryItem, error)

	// GetItemByID 根据ID获取条目，不存在时返回记录未找到错误
	GetItemByID(id uint) (*database.GalleryItem, error)

	// UpdateItem 更新条目描述，携带新文件时替换旧文件并重新推断类型
	UpdateItem(id uint, req *UpdateItemRequest) (*database.GalleryItem, error)

	// DeleteItem 删除条目并尽力删除存储文件
	DeleteItem(id uint) error

	// ListItems 获取全部相册条目
	ListItems() ([]database.GalleryItem, error)
}

// galleryService 相册服务实现
type galleryService struct {
	db      *gorm.DB
	storage storageservice.StorageService
}

// NewGalleryService 创建相册服务实例
func NewGalleryService(db *gorm.DB, storage storageservice.StorageService) GalleryService {
	return &galleryService{
		db:      db,
		storage: storage,
	}
}

// CreateItem 创建相册条目
func (s *galleryService) CreateItem(req *CreateItemRequest) (*database.GalleryItem, error) {
	if req.File == nil {
		return nil, apperrors.ErrInvalidParameters
	}

	fileType := s.storage.Classify(req.File.ContentType)
	if fileType == "" {
		return nil, apperrors.NewWithDetails(apperrors.ErrFileTypeNotAllowed,
			apperrors.GetErrorMessage(apperrors.ErrFileTypeNotAllowed),
			"content type must be image/* or video/*")
	}

	storedName, err := s.storage.Save(req.File.FileName, req.File.Data)
	if err != nil {
		return nil, err
	}

	item := &database.GalleryItem{
		FileName:     storedName,
		OriginalName: req.File.FileName,
		FileType:     fileType,
		Description:  req.Description,
	}

	if err := s.db.Create(item).Error; err != nil {
		if rmErr := s.storage.Remove(storedName); rmErr != nil {
			logger.Warnf("Failed to clean up gallery file %s: %v", storedName, rmErr)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
	}

	logger.Infof("Created gallery item %d (%s): %s", item.ID, item.FileType, item.OriginalName)
	return item, nil
}

// GetItemByID 根据ID获取条目
func (s *galleryService) GetItemByID(id uint) (*database.GalleryItem, error) {
	var item database.GalleryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFoundError
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &item, nil
}

// UpdateItem 更新相册条目
func (s *galleryService) UpdateItem(id uint, req *UpdateItemRequest) (*database.GalleryItem, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}

	item.Description = req.Description

	if req.File != nil {
		fileType := s.storage.Classify(req.File.ContentType)
		if fileType == "" {
			return nil, apperrors.NewWithDetails(apperrors.ErrFileTypeNotAllowed,
				apperrors.GetErrorMessage(apperrors.ErrFileTypeNotAllowed),
				"content type must be image/* or video/*")
		}

		storedName, err := s.storage.Save(req.File.FileName, req.File.Data)
		if err != nil {
			return nil, err
		}

		// 旧文件尽力删除，失败不阻断更新
		if rmErr := s.storage.Remove(item.FileName); rmErr != nil {
			logger.Warnf("Failed to remove old gallery file %s: %v", item.FileName, rmErr)
		}

		item.FileName = storedName
		item.OriginalName = req.File.FileName
		item.FileType = fileType
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseUpdate,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
	}

	return item, nil
}

// DeleteItem 删除相册条目
func (s *galleryService) DeleteItem(id uint) error {
	item, err := s.GetItemByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseDelete,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
	}

	if rmErr := s.storage.Remove(item.FileName); rmErr != nil {
		logger.Warnf("Failed to remove file %s of deleted gallery item %d: %v", item.FileName, id, rmErr)
	}

	logger.Infof("Deleted gallery item %d: %s", item.ID, item.OriginalName)
	return nil
}

// ListItems 获取全部相册条目
func (s *galleryService) ListItems() ([]database.GalleryItem, error) {
	var items []database.GalleryItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return items, nil
}
