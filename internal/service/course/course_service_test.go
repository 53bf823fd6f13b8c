// Package course 的单元测试
package course_test

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
	courseservice "github.com/minglangedu/website/internal/service/course"
	storageservice "github.com/minglangedu/website/internal/service/storage"
)

// setupTestDB 创建内存SQLite数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// 内存数据库必须限制为单连接，否则每个连接各是一份空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// setupServices 创建课程服务和它依赖的存储服务
func setupServices(t *testing.T) (courseservice.CourseService, storageservice.StorageService, string) {
	db := setupTestDB(t)
	dir := t.TempDir()

	storage, err := storageservice.NewStorageService(config.FileConfig{
		StoragePath:       dir,
		MaxFileSize:       10 * 1024 * 1024,
		AllowedExtensions: []string{"*"},
	})
	require.NoError(t, err)

	return courseservice.NewCourseService(db, storage), storage, dir
}

func TestCreateCourse(t *testing.T) {
	svc, storage, _ := setupServices(t)

	t.Run("携带图片创建", func(t *testing.T) {
		course, err := svc.CreateCourse(&courseservice.CreateCourseRequest{
			Name:        "Math 101",
			Description: "Intro",
			Image: &courseservice.ImageUpload{
				FileName: "math.png",
				Data:     strings.NewReader("png-bytes"),
			},
		})
		require.NoError(t, err)
		require.NotNil(t, course.Image)

		// 图片已经落盘
		_, statErr := os.Stat(storage.Path(*course.Image))
		assert.NoError(t, statErr)

		courses, err := svc.ListCourses()
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, "Math 101", courses[0].Name)
		assert.Equal(t, "Intro", courses[0].Description)
		assert.NotNil(t, courses[0].Image)
	})

	t.Run("不带图片创建", func(t *testing.T) {
		course, err := svc.CreateCourse(&courseservice.CreateCourseRequest{
			Name:        "Physics",
			Description: "Mechanics",
		})
		require.NoError(t, err)
		assert.Nil(t, course.Image)
	})
}

func TestUpdateCourse(t *testing.T) {
	svc, storage, _ := setupServices(t)

	course, err := svc.CreateCourse(&courseservice.CreateCourseRequest{
		Name:        "Old Name",
		Description: "Old",
		Image: &courseservice.ImageUpload{
			FileName: "old.png",
			Data:     strings.NewReader("old-image"),
		},
	})
	require.NoError(t, err)
	oldImage := *course.Image

	t.Run("替换图片时删除旧文件", func(t *testing.T) {
		updated, err := svc.UpdateCourse(course.ID, &courseservice.UpdateCourseRequest{
			Name:        "New Name",
			Description: "New",
			Image: &courseservice.ImageUpload{
				FileName: "new.png",
				Data:     strings.NewReader("new-image"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		require.NotNil(t, updated.Image)
		assert.NotEqual(t, oldImage, *updated.Image)

		_, statErr := os.Stat(storage.Path(oldImage))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("不带图片时保留原图片", func(t *testing.T) {
		before, err := svc.GetCourseByID(course.ID)
		require.NoError(t, err)
		require.NotNil(t, before.Image)

		updated, err := svc.UpdateCourse(course.ID, &courseservice.UpdateCourseRequest{
			Name:        "Renamed Again",
			Description: "Desc",
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Image)
		assert.Equal(t, *before.Image, *updated.Image)
	})

	t.Run("更新不存在的记录", func(t *testing.T) {
		_, err := svc.UpdateCourse(9999, &courseservice.UpdateCourseRequest{Name: "x"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrRecordNotFound))
	})
}

func TestDeleteCourse(t *testing.T) {
	svc, storage, _ := setupServices(t)

	course, err := svc.CreateCourse(&courseservice.CreateCourseRequest{
		Name:        "Doomed",
		Description: "Soon gone",
		Image: &courseservice.ImageUpload{
			FileName: "doomed.png",
			Data:     strings.NewReader("bytes"),
		},
	})
	require.NoError(t, err)
	image := *course.Image

	require.NoError(t, svc.DeleteCourse(course.ID))

	// 记录和文件都被删除
	courses, err := svc.ListCourses()
	require.NoError(t, err)
	assert.Empty(t, courses)
	_, statErr := os.Stat(storage.Path(image))
	assert.True(t, os.IsNotExist(statErr))

	// 重复删除同一条记录返回记录未找到，而不是崩溃
	err = svc.DeleteCourse(course.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrRecordNotFound))
}
