// Package gallery 的单元测试
package gallery_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minglangedu/website/config"
	"github.com/minglangedu/website/internal/database"
	apperrors "github.com/minglangedu/website/internal/errors"
	galleryservice "github.com/minglangedu/website/internal/service/gallery"
	storageservice "github.com/minglangedu/website/internal/service/storage"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func setupServices(t *testing.T) (galleryservice.GalleryService, storageservice.StorageService) {
	db := setupTestDB(t)

	storage, err := storageservice.NewStorageService(config.FileConfig{
		StoragePath:       t.TempDir(),
		MaxFileSize:       10 * 1024 * 1024,
		AllowedExtensions: []string{"*"},
	})
	require.NoError(t, err)

	return galleryservice.NewGalleryService(db, storage), storage
}

func TestCreateItem(t *testing.T) {
	svc, _ := setupServices(t)

	t.Run("视频类型推断", func(t *testing.T) {
		item, err := svc.CreateItem(&galleryservice.CreateItemRequest{
			Description: "sports day",
			File: &galleryservice.MediaUpload{
				FileName:    "clip.mp4",
				ContentType: "video/mp4",
				Data:        strings.NewReader("video-bytes"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, database.FileTypeVideo, item.FileType)
		assert.Equal(t, "clip.mp4", item.OriginalName)
		assert.NotEqual(t, "clip.mp4", item.FileName)
	})

	t.Run("图片类型推断", func(t *testing.T) {
		item, err := svc.CreateItem(&galleryservice.CreateItemRequest{
			File: &galleryservice.MediaUpload{
				FileName:    "campus.jpeg",
				ContentType: "image/jpeg",
				Data:        strings.NewReader("jpeg-bytes"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, database.FileTypeImage, item.FileType)
	})

	t.Run("其他MIME类型被拒绝", func(t *testing.T) {
		_, err := svc.CreateItem(&galleryservice.CreateItemRequest{
			File: &galleryservice.MediaUpload{
				FileName:    "doc.pdf",
				ContentType: "application/pdf",
				Data:        strings.NewReader("pdf-bytes"),
			},
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileTypeNotAllowed))
	})

	t.Run("缺少文件被拒绝", func(t *testing.T) {
		_, err := svc.CreateItem(&galleryservice.CreateItemRequest{Description: "no file"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidParams))
	})
}

func TestUpdateItem(t *testing.T) {
	svc, storage := setupServices(t)

	item, err := svc.CreateItem(&galleryservice.CreateItemRequest{
		Description: "before",
		File: &galleryservice.MediaUpload{
			FileName:    "before.png",
			ContentType: "image/png",
			Data:        strings.NewReader("before-bytes"),
		},
	})
	require.NoError(t, err)
	oldFile := item.FileName

	t.Run("仅更新描述", func(t *testing.T) {
		updated, err := svc.UpdateItem(item.ID, &galleryservice.UpdateItemRequest{
			Description: "after",
		})
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Description)
		assert.Equal(t, oldFile, updated.FileName)
	})

	t.Run("替换文件并重新推断类型", func(t *testing.T) {
		updated, err := svc.UpdateItem(item.ID, &galleryservice.UpdateItemRequest{
			Description: "now a video",
			File: &galleryservice.MediaUpload{
				FileName:    "after.mp4",
				ContentType: "video/mp4",
				Data:        strings.NewReader("after-bytes"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, database.FileTypeVideo, updated.FileType)
		assert.NotEqual(t, oldFile, updated.FileName)

		_, statErr := os.Stat(storage.Path(oldFile))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("更新不存在的记录", func(t *testing.T) {
		_, err := svc.UpdateItem(9999, &galleryservice.UpdateItemRequest{Description: "x"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrRecordNotFound))
	})
}

func TestDeleteItem(t *testing.T) {
	svc, storage := setupServices(t)

	item, err := svc.CreateItem(&galleryservice.CreateItemRequest{
		File: &galleryservice.MediaUpload{
			FileName:    "gone.png",
			ContentType: "image/png",
			Data:        strings.NewReader("bytes"),
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(item.ID))

	items, err := svc.ListItems()
	require.NoError(t, err)
	assert.Empty(t, items)
	_, statErr := os.Stat(storage.Path(item.FileName))
	assert.True(t, os.IsNotExist(statErr))

	// 重复删除返回记录未找到
	err = svc.DeleteItem(item.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrRecordNotFound))
}
