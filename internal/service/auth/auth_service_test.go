// Package auth 的单元测试
package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minglangedu/website/config"
	"github.com/minglangedu/website/internal/database"
	apperrors "github.com/minglangedu/website/internal/errors"
	authservice "github.com/minglangedu/website/internal/service/auth"
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

func TestSeedDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)
	cfg := config.AdminConfig{Username: "admin", Password: "admin123"}

	require.NoError(t, database.SeedDefaultAdmin(db, cfg))

	var count int64
	require.NoError(t, db.Model(&database.Admin{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 重复初始化不会覆盖已有账号
	var before database.Admin
	require.NoError(t, db.Where("username = ?", "admin").First(&before).Error)

	require.NoError(t, database.SeedDefaultAdmin(db, config.AdminConfig{
		Username: "admin",
		Password: "another-password",
	}))

	var after database.Admin
	require.NoError(t, db.Where("username = ?", "admin").First(&after).Error)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, database.SeedDefaultAdmin(db, config.AdminConfig{
		Username: "admin",
		Password: "admin123",
	}))

	svc := authservice.NewAuthService(db)

	t.Run("正确凭证", func(t *testing.T) {
		admin, err := svc.Authenticate("admin", "admin123")
		require.NoError(t, err)
		assert.Equal(t, "admin", admin.Username)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Authenticate("admin", "wrong-password")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("用户名不存在", func(t *testing.T) {
		_, err := svc.Authenticate("nobody", "admin123")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidCredentials))
	})
}
