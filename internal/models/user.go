package models

import (
	"strings"
	"time"
)

// User 用户模型，邮箱作为登录标识
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string     `gorm:"size:60;not null" json:"name"`
	Age          int        `gorm:"not null;default:18" json:"age"`
	Image        string     `gorm:"size:255;default:default.jpg" json:"image"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	IsStaff      bool       `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool       `gorm:"default:false" json:"is_superuser"`
	IsActive     bool       `gorm:"default:false" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	DateJoined   time.Time  `json:"date_joined"`

	// 关联，用户删除时级联删除其评论
	Comments []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// NormalizeEmail 规范化邮箱，域名部分统一小写
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
