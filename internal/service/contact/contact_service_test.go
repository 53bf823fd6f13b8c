// Package contact 的单元测试
package contact_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minglangedu/website/internal/database"
	apperrors "github.com/minglangedu/website/internal/errors"
	contactservice "github.com/minglangedu/website/internal/service/contact"
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

func TestCreateMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := contactservice.NewContactService(db)

	t.Run("创建留言", func(t *testing.T) {
		msg, err := svc.CreateMessage(&contactservice.CreateMessageRequest{
			Name:    "Li Lei",
			Phone:   "13800000000",
			Email:   "lilei@example.com",
			Message: "When does the next term start?",
		})
		require.NoError(t, err)
		assert.NotZero(t, msg.ID)
		assert.False(t, msg.CreatedAt.IsZero())
	})

	t.Run("邮箱可以为空", func(t *testing.T) {
		_, err := svc.CreateMessage(&contactservice.CreateMessageRequest{
			Name:    "Han Meimei",
			Phone:   "13900000000",
			Message: "Do you offer evening classes?",
		})
		assert.NoError(t, err)
	})

	t.Run("必填字段缺失被拒绝", func(t *testing.T) {
		_, err := svc.CreateMessage(&contactservice.CreateMessageRequest{
			Name:  "No Message",
			Phone: "13700000000",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidParams))
	})
}

func TestListMessagesOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := contactservice.NewContactService(db)

	// 乱序写入三条不同时间的留言
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []database.ContactMessage{
		{Name: "second", Phone: "2", Message: "m", CreatedAt: base.Add(time.Hour)},
		{Name: "first", Phone: "1", Message: "m", CreatedAt: base},
		{Name: "third", Phone: "3", Message: "m", CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	messages, err := svc.ListMessages()
	require.NoError(t, err)
	require.Len(t, messages, 3)

	// 按创建时间严格降序
	assert.Equal(t, "third", messages[0].Name)
	assert.Equal(t, "second", messages[1].Name)
	assert.Equal(t, "first", messages[2].Name)
	assert.True(t, messages[0].CreatedAt.After(messages[1].CreatedAt))
	assert.True(t, messages[1].CreatedAt.After(messages[2].CreatedAt))
}
