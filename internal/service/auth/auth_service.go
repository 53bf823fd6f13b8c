// Package auth 提供管理员的凭证校验服务
// 会话状态本身由Cookie会话中间件承载，这里只负责用户名密码的核对
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/minglangedu/website/internal/database"
	apperrors "github.com/minglangedu/website/internal/errors"
)

// AuthService 认证服务接口
type AuthService interface {
	// Authenticate 校验管理员凭证
	// 用户名不存在和密码不匹配返回同一个错误，避免暴露账号是否存在
	Authenticate(username, password string) (*database.Admin, error)
}

// authService 认证服务实现
type authService struct {
	db *gorm.DB
}

// NewAuthService 创建认证服务实例
func NewAuthService(db *gorm.DB) AuthService {
	return &authService{db: db}
}

// Authenticate 校验管理员凭证
func (s *authService) Authenticate(username, password string) (*database.Admin, error) {
	var admin database.Admin
	if err := s.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentialsError
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery,
			apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentialsError
	}

	return &admin, nil
}
