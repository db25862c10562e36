package models

import "time"

// Category 新闻分类
type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:60;not null" json:"name"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// News 新闻文章，分类删除时外键置空而不删除文章
type News struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"size:100;not null" json:"title"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Image      string    `gorm:"size:255" json:"image"`
	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	PostedAt   time.Time `gorm:"index" json:"posted_at"`

	// 文章删除时级联删除评论
	Comments []Comment `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName 指定表名
func (News) TableName() string {
	return "news"
}
