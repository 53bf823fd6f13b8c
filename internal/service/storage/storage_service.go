// Package storage 提供上传文件的本地存储服务
// 负责上传文件的落盘、删除和媒体类型推断
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/minglangedu/website/config"
	"github.com/minglangedu/website/internal/database"
	apperrors "github.com/minglangedu/website/internal/errors"
	"github.com/minglangedu/website/internal/logger"
)

// StorageService 上传文件存储服务接口
// 上传目录是一个扁平目录，存储名由服务生成，客户端文件名只作为元数据保留
type StorageService interface {
	// Save 保存上传内容并返回生成的存储文件名
	// 存储名为 UUID + 原始扩展名，写入先落临时文件再原子移动到位，
	// 因此同名并发上传互不影响，磁盘上不会出现半截文件
	Save(originalName string, fileData io.Reader) (string, error)

	// Remove 删除存储文件
	// 文件已不存在不算错误；其余错误返回给调用方记录，调用方不应因此中断流程
	Remove(storedName string) error

	// Classify 根据声明的MIME类型推断媒体类型
	// image/* 返回 "image"，video/* 返回 "video"，其余返回空串
	Classify(contentType string) string

	// Path 返回存储文件的完整路径
	Path(storedName string) string
}

// storageService 本地目录存储实现
type storageService struct {
	config config.FileConfig
}

// NewStorageService 创建存储服务实例
// 存储目录不存在时自动创建
func NewStorageService(cfg config.FileConfig) (StorageService, error) {
	if err := os.MkdirAll(cfg.StoragePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", cfg.StoragePath, err)
	}

	logger.Infof("Storage service initialized, path: %s, max file size: %d bytes", cfg.StoragePath, cfg.MaxFileSize)

	return &storageService{config: cfg}, nil
}

// Save 保存上传内容到存储目录
func (s *storageService) Save(originalName string, fileData io.Reader) (string, error) {
	fileExt := strings.ToLower(filepath.Ext(originalName))
	if fileExt == "" {
		fileExt = ".bin" // 默认扩展名
	}

	if !s.isAllowedExtension(fileExt) {
		return "", apperrors.Wrap(apperrors.ErrFileTypeNotAllowed,
			apperrors.GetErrorMessage(apperrors.ErrFileTypeNotAllowed),
			fmt.Errorf("extension %s is not allowed", fileExt))
	}

	storedName := uuid.New().String() + fileExt
	storagePath := filepath.Join(s.config.StoragePath, storedName)

	// 先写入同目录下的临时文件，校验通过后再重命名到最终位置
	// 同一文件系统内重命名是原子的，避免并发上传互相覆盖出半截文件
	tempFile, err := os.CreateTemp(s.config.StoragePath, ".upload_*")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrFileWriteFailed,
			apperrors.GetErrorMessage(apperrors.ErrFileWriteFailed), err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	fileSize, err := io.Copy(tempFile, fileData)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrFileWriteFailed,
			apperrors.GetErrorMessage(apperrors.ErrFileWriteFailed), err)
	}

	if s.config.MaxFileSize > 0 && fileSize > s.config.MaxFileSize {
		return "", apperrors.Wrap(apperrors.ErrFileSizeTooLarge,
			apperrors.GetErrorMessage(apperrors.ErrFileSizeTooLarge),
			fmt.Errorf("file size %d exceeds maximum allowed size %d", fileSize, s.config.MaxFileSize))
	}

	if err := tempFile.Close(); err != nil {
		return "", apperrors.Wrap(apperrors.ErrFileWriteFailed,
			apperrors.GetErrorMessage(apperrors.ErrFileWriteFailed), err)
	}

	if err := s.moveFile(tempFile.Name(), storagePath); err != nil {
		return "", apperrors.Wrap(apperrors.ErrFileWriteFailed,
			apperrors.GetErrorMessage(apperrors.ErrFileWriteFailed), err)
	}

	logger.WithField("stored_name", storedName).Debugf("Saved upload %s (%d bytes)", originalName, fileSize)
	return storedName, nil
}

// Remove 删除存储文件
func (s *storageService) Remove(storedName string) error {
	if storedName == "" {
		return nil
	}
	if err := os.Remove(s.Path(storedName)); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(apperrors.ErrFileDeleteFailed,
			apperrors.GetErrorMessage(apperrors.ErrFileDeleteFailed), err)
	}
	return nil
}

// Classify 根据MIME类型前缀推断媒体类型
func (s *storageService) Classify(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image"):
		return database.FileTypeImage
	case strings.HasPrefix(contentType, "video"):
		return database.FileTypeVideo
	default:
		return ""
	}
}

// Path 返回存储文件的完整路径
func (s *storageService) Path(storedName string) string {
	return filepath.Join(s.config.StoragePath, storedName)
}

// isAllowedExtension 检查文件扩展名是否允许
func (s *storageService) isAllowedExtension(ext string) bool {
	for _, allowed := range s.config.AllowedExtensions {
		if allowed == "*" {
			return true
		}
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// moveFile 移动文件
// 优先使用重命名操作，如果失败则使用复制+删除的方式
func (s *storageService) moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	// 同一文件系统内重命名是原子的
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return os.Remove(src)
}
