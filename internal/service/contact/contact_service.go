// Package contact 提供留言管理的业务逻辑服务
// 留言只能由公开的联系表单创建，创建后不可修改
package contact

import (
	"strings"

	"gorm.io/gorm"

	"github.com/minglangedu/website/internal/database"
	apperrors "github.com/minglangedu/website/internal/errors"
	"github.com/minglangedu/website/internal/logger"
)

// CreateMessageRequest 创建留言请求
// Email为可选字段，其余字段必填
type CreateMessageRequest struct {
	Name    string
	Phone   string
	Email   string
	Message string
}

// ContactService 留言服务接口
type ContactService interface {
	// CreateMessage 创建留言
	CreateMessage(req *CreateMessageRequest) (*database.ContactMessage, error)

	// ListMessages 获取全部留言，按创建时间降序排列
	ListMessages() ([]database.ContactMessage, error)
}

// contactService 留言服务实现
type contactService struct {
	db *gorm.DB
}

// NewContactService 创建留言服务实例
func NewContactService(db *gorm.DB) ContactService {
	return &contactService{db: db}
}

// CreateMessage 创建留言
func (s *contactService) CreateMessage(req *CreateMessageRequest) (*database.ContactMessage, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.ErrInvalidParameters
	}

	msg := &database.ContactMessage{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := s.db.Create(msg).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
	}

	logger.Infof("Received contact message %d from %s", msg.ID, msg.Name)
	return msg, nil
}

// ListMessages 获取全部留言
// 创建时间相同的按ID降序，保证顺序稳定
func (s *contactService) ListMessages() ([]database.ContactMessage, error) {
	var messages []database.ContactMessage
	if err := s.db.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return messages, nil
}
