// Package database 定义了网站的数据库模型
// 包含管理员、课程、相册和留言四个彼此独立的表
package database

import (
	"time"
)

// 相册条目的媒体类型
const (
	FileTypeImage = "image"
	FileTypeVideo = "video"
)

// Admin 管理员模型
// 站点只有一个共享的管理员身份，进程启动时按用户名做种子初始化
type Admin struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"` // 登录用户名，唯一
	PasswordHash string    `gorm:"not null;size:200" json:"-"`                   // bcrypt密码哈希，永不外发
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定Admin模型对应的数据库表名
func (Admin) TableName() string {
	return "admins"
}

// Course 课程模型
type Course struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null;size:100" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Image       *string   `gorm:"size:255" json:"image"` // 存储文件名，可为空；不保证对应文件一定存在
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定Course模型对应的数据库表名
func (Course) TableName() string {
	return "courses"
}

// GalleryItem 相册条目模型
// FileType在上传时根据声明的MIME类型推断，之后不再校验
type GalleryItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	FileName     string    `gorm:"not null;size:255" json:"file_name"`      // 存储文件名（UUID+扩展名）
	OriginalName string    `gorm:"size:255" json:"original_name"`           // 客户端原始文件名，仅作展示
	FileType     string    `gorm:"not null;size:10" json:"file_type"`       // image/video
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定GalleryItem模型对应的数据库表名
func (GalleryItem) TableName() string {
	return "gallery_items"
}

// ContactMessage 留言模型
// 仅由公开的联系表单创建，创建后不可修改也不可删除
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;size:50" json:"name"`
	Phone     string    `gorm:"not null;size:20" json:"phone"`
	Email     string    `gorm:"size:50" json:"email"` // 可选
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定ContactMessage模型对应的数据库表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
