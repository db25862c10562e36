package models

import "time"

// Comment 评论，归属用户与文章，两侧均级联删除
type Comment struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	AuthorID uint      `gorm:"not null" json:"author_id"`
	Author   User      `json:"author,omitempty"`
	NewsID   uint      `gorm:"not null" json:"news_id"`
	News     News      `json:"-"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PostedAt time.Time `gorm:"index" json:"posted_at"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
