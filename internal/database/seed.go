// Package database 提供数据库种子数据初始化功能
package database

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/minglangedu/website/config"
	"github.com/minglangedu/website/internal/logger"
)

// SeedDefaultAdmin 初始化默认管理员账号
// 仅在配置的用户名不存在时创建，已存在的账号不会被修改
func SeedDefaultAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	var existing Admin
	err := db.Where("username = ?", cfg.Username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := Admin{
		Username:     cfg.Username,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logger.Infof("Seeded default admin account: %s", cfg.Username)
	return nil
}
