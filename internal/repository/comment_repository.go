package repository

import (
	"newsgo/internal/models"

	"gorm.io/gorm"
)

// CommentRepository 评论数据访问层
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论Repository
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据ID获取评论
func (r *CommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update 更新评论内容
func (r *CommentRepository) Update(id uint, text string) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Update("text", text).Error
}

// Delete 删除评论
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// ListByNews 获取文章评论，发布时间倒序
func (r *CommentRepository) ListByNews(newsID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("news_id = ?", newsID).
		Order("posted_at DESC").
		Find(&comments).Error
	return comments, err
}

// CountByNews 统计文章评论数
func (r *CommentRepository) CountByNews(newsID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("news_id = ?", newsID).Count(&count).Error
	return count, err
}
