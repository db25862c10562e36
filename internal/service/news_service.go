package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"newsgo/internal/dto"
	"newsgo/internal/models"
	"newsgo/internal/repository"

	"gorm.io/gorm"
)

// ErrNewsNotFound 文章不存在
var ErrNewsNotFound = errors.New("文章不存在")

// NewsService 新闻服务
type NewsService struct {
	newsRepo     *repository.NewsRepository
	categoryRepo *repository.CategoryRepository
	commentRepo  *repository.CommentRepository
}

// NewNewsService 创建新闻服务
func NewNewsService(
	newsRepo *repository.NewsRepository,
	categoryRepo *repository.CategoryRepository,
	commentRepo *repository.CommentRepository,
) *NewsService {
	return &NewsService{
		newsRepo:     newsRepo,
		categoryRepo: categoryRepo,
		commentRepo:  commentRepo,
	}
}

// List 获取新闻列表，可按分类过滤。
// 分类ID非法或不存在时降级为完整列表，不报错。
func (s *NewsService) List(categoryParam string) (*dto.NewsListResponse, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("获取分类列表失败: %w", err)
	}

	news, err := s.listFiltered(categoryParam)
	if err != nil {
		return nil, fmt.Errorf("获取新闻列表失败: %w", err)
	}

	resp := &dto.NewsListResponse{
		News:       make([]dto.NewsItem, 0, len(news)),
		Categories: make([]dto.CategoryInfo, 0, len(categories)),
	}
	for _, n := range news {
		resp.News = append(resp.News, newsToItem(&n))
	}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, dto.CategoryInfo{ID: c.ID, Name: c.Name})
	}
	return resp, nil
}

// listFiltered 按分类参数取新闻，无效过滤条件返回全部
func (s *NewsService) listFiltered(categoryParam string) ([]models.News, error) {
	if categoryParam == "" {
		return s.newsRepo.List()
	}

	id, err := strconv.ParseUint(categoryParam, 10, 64)
	if err != nil {
		return s.newsRepo.List()
	}

	if _, err := s.categoryRepo.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.newsRepo.List()
		}
		return nil, err
	}

	return s.newsRepo.ListByCategory(uint(id))
}

// Detail 获取文章详情及其评论
func (s *NewsService) Detail(id uint) (*dto.NewsDetailResponse, error) {
	news, err := s.newsRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("获取文章失败: %w", err)
	}

	comments, err := s.commentRepo.ListByNews(id)
	if err != nil {
		return nil, fmt.Errorf("获取评论失败: %w", err)
	}
	count, err := s.commentRepo.CountByNews(id)
	if err != nil {
		return nil, fmt.Errorf("统计评论失败: %w", err)
	}

	resp := &dto.NewsDetailResponse{
		News:          newsToItem(news),
		Comments:      make([]dto.CommentInfo, 0, len(comments)),
		CommentsCount: count,
	}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, commentToInfo(&c))
	}
	return resp, nil
}

// Create 创建新闻（管理端）
func (s *NewsService) Create(form *dto.NewsForm, image string) (*models.News, error) {
	news := &models.News{
		Title:      form.Title,
		Text:       form.Text,
		Image:      image,
		CategoryID: form.CategoryID,
		PostedAt:   time.Now(),
	}
	if err := s.newsRepo.Create(news); err != nil {
		return nil, fmt.Errorf("创建新闻失败: %w", err)
	}
	return news, nil
}

// Update 更新新闻（管理端），image为空时保留原图
func (s *NewsService) Update(id uint, form *dto.NewsForm, image string) (*models.News, error) {
	news, err := s.newsRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("获取文章失败: %w", err)
	}

	news.Title = form.Title
	news.Text = form.Text
	news.CategoryID = form.CategoryID
	news.Category = nil
	if image != "" {
		news.Image = image
	}

	if err := s.newsRepo.Update(news); err != nil {
		return nil, fmt.Errorf("更新新闻失败: %w", err)
	}
	return news, nil
}

// Delete 删除新闻，其评论级联删除
func (s *NewsService) Delete(id uint) error {
	if _, err := s.newsRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return fmt.Errorf("获取文章失败: %w", err)
	}
	return s.newsRepo.Delete(id)
}

// CreateCategory 创建分类（管理端）
func (s *NewsService) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("创建分类失败: %w", err)
	}
	return category, nil
}

// DeleteCategory 删除分类，引用它的新闻外键置空
func (s *NewsService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("分类不存在")
		}
		return fmt.Errorf("获取分类失败: %w", err)
	}
	return s.categoryRepo.Delete(id)
}

// ListCategories 获取全部分类
func (s *NewsService) ListCategories() ([]dto.CategoryInfo, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("获取分类列表失败: %w", err)
	}
	infos := make([]dto.CategoryInfo, 0, len(categories))
	for _, c := range categories {
		infos = append(infos, dto.CategoryInfo{ID: c.ID, Name: c.Name})
	}
	return infos, nil
}

// newsToItem 模型到新闻DTO的映射
func newsToItem(news *models.News) dto.NewsItem {
	item := dto.NewsItem{
		ID:       news.ID,
		Title:    news.Title,
		Text:     news.Text,
		Image:    news.Image,
		PostedAt: news.PostedAt,
	}
	if news.Category != nil {
		item.Category = &dto.CategoryInfo{ID: news.Category.ID, Name: news.Category.Name}
	}
	return item
}

// commentToInfo 模型到评论DTO的映射
func commentToInfo(comment *models.Comment) dto.CommentInfo {
	return dto.CommentInfo{
		ID:         comment.ID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.Author.Name,
		Text:       comment.Text,
		PostedAt:   comment.PostedAt,
	}
}
