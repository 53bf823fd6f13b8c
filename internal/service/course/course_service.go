// Package course 提供课程管理的业务逻辑服务
// 课程可以携带一张可选的介绍图片，图片通过存储服务落盘
package course

import (
	"errors"
	"io"

	"gorm.io/gorm"

	"github.com/minglangedu/website/internal/database"
	apperrors "github.com/minglangedu/website/internal/errors"
	"github.com/minglangedu/website/internal/logger"
	storageservice "github.com/minglangedu/website/internal/service/storage"
)

// ImageUpload 课程图片上传内容
type ImageUpload struct {
	FileName string    // 客户端原始文件名
	Data     io.Reader // 文件数据流
}

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name        string
	Description string
	Image       *ImageUpload // 可选
}

// UpdateCourseRequest 更新课程请求
// Image为nil时保留原图片
type UpdateCourseRequest struct {
	Name        string
	Description string
	Image       *ImageUpload
}

// CourseService 课程服务接口
type CourseService interface {
	// CreateCourse 创建课程
	// 如果携带图片，先通过存储服务写入，再把存储名写进数据库行；
	// 文件写入与数据库写入之间没有事务耦合
	CreateCourse(req *CreateCourseRequest) (*database.Course, error)

	// GetCourseByID 根据ID获取课程，不存在时返回记录未找到错误
	GetCourseByID(id uint) (*database.Course, error)

	// UpdateCourse 更新课程
	// 携带新图片时旧图片会被尽力删除并替换
	UpdateCourse(id uint, req *UpdateCourseRequest) (*database.Course, error)

	// DeleteCourse 删除课程并尽力删除关联图片
	// 删除失败的文件只记录日志，不影响数据库行的删除
	DeleteCourse(id uint) error

	// ListCourses 获取全部课程
	ListCourses() ([]database.Course, error)
}

// courseService 课程服务实现
type courseService struct {
	db      *gorm.DB
	storage storageservice.StorageService
}

// NewCourseService 创建课程服务实例
func NewCourseService(db *gorm.DB, storage storageservice.StorageService) CourseService {
	return &courseService{
		db:      db,
		storage: storage,
	}
}

// CreateCourse 创建课程
func (s *courseService) CreateCourse(req *CreateCourseRequest) (*database.Course, error) {
	course := &database.Course{
		Name:        req.Name,
		Description: req.Description,
	}

	if req.Image != nil {
		storedName, err := s.storage.Save(req.Image.FileName, req.Image.Data)
		if err != nil {
			return nil, err
		}
		course.Image = &storedName
	}

	if err := s.db.Create(course).Error; err != nil {
		// 数据库写入失败时尽力清理刚写入的文件
		if course.Image != nil {
			if rmErr := s.storage.Remove(*course.Image); rmErr != nil {
				logger.Warnf("Failed to clean up course image %s: %v", *course.Image, rmErr)
			}
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
	}

	logger.Infof("Created course %d: %s", course.ID, course.Name)
	return course, nil
}

// GetCourseByID 根据ID获取课程
func (s *courseService) GetCourseByID(id uint) (*database.Course, error) {
	var course database.Course
	if err := s.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFoundError
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &course, nil
}

// UpdateCourse 更新课程
func (s *courseService) UpdateCourse(id uint, req *UpdateCourseRequest) (*database.Course, error) {
	course, err := s.GetCourseByID(id)
	if err != nil {
		return nil, err
	}

	course.Name = req.Name
	course.Description = req.Description

	if req.Image != nil {
		storedName, err := s.storage.Save(req.Image.FileName, req.Image.Data)
		if err != nil {
			return nil, err
		}
		// 旧图片尽力删除，失败不阻断更新
		if course.Image != nil {
			if rmErr := s.storage.Remove(*course.Image); rmErr != nil {
				logger.Warnf("Failed to remove old course image %s: %v", *course.Image, rmErr)
			}
		}
		course.Image = &storedName
	}

	if err := s.db.Save(course).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseUpdate,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
	}

	return course, nil
}

// DeleteCourse 删除课程
func (s *courseService) DeleteCourse(id uint) error {
	course, err := s.GetCourseByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(course).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseDelete,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
	}

	// 关联图片尽力删除
	if course.Image != nil {
		if rmErr := s.storage.Remove(*course.Image); rmErr != nil {
			logger.Warnf("Failed to remove image %s of deleted course %d: %v", *course.Image, id, rmErr)
		}
	}

	logger.Infof("Deleted course %d: %s", course.ID, course.Name)
	return nil
}

// ListCourses 获取全部课程
func (s *courseService) ListCourses() ([]database.Course, error) {
	var courses []database.Course
	if err := s.db.Find(&courses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return courses, nil
}
