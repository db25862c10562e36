package repository

import (
	"newsgo/internal/models"

	"gorm.io/gorm"
)

// NewsRepository 新闻数据访问层
type NewsRepository struct {
	db *gorm.DB
}

// NewNewsRepository 创建新闻Repository
func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// Create 创建新闻
func (r *NewsRepository) Create(news *models.News) error {
	return r.db.Create(news).Error
}

// GetByID 根据ID获取新闻
func (r *NewsRepository) GetByID(id uint) (*models.News, error) {
	var news models.News
	err := r.db.Preload("Category").First(&news, id).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// Update 更新新闻
func (r *NewsRepository) Update(news *models.News) error {
	return r.db.Save(news).Error
}

// Delete 删除新闻
func (r *NewsRepository) Delete(id uint) error {
	return r.db.Delete(&models.News{}, id).Error
}

// List 按发布时间倒序获取全部新闻
func (r *NewsRepository) List() ([]models.News, error) {
	var news []models.News
	err := r.db.Preload("Category").Order("posted_at DESC").Find(&news).Error
	return news, err
}

// ListByCategory 按分类获取新闻，发布时间倒序
func (r *NewsRepository) ListByCategory(categoryID uint) ([]models.News, error) {
	var news []models.News
	err := r.db.Preload("Category").
		Where("category_id = ?", categoryID).
		Order("posted_at DESC").
		Find(&news).Error
	return news, err
}
