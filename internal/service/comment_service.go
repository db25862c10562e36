package service

import (
	"errors"
	"fmt"
	"time"

	"newsgo/internal/models"
	"newsgo/internal/repository"

	"gorm.io/gorm"
)

// ErrCommentNotFound 评论不存在
var ErrCommentNotFound = errors.New("评论不存在")

// CommentService 评论服务
type CommentService struct {
	commentRepo *repository.CommentRepository
	newsRepo    *repository.NewsRepository
}

// NewCommentService 创建评论服务
func NewCommentService(commentRepo *repository.CommentRepository, newsRepo *repository.NewsRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		newsRepo:    newsRepo,
	}
}

// Create 在文章下创建评论，作者为当前会话用户
func (s *CommentService) Create(authorID, newsID uint, text string) (*models.Comment, error) {
	if _, err := s.newsRepo.GetByID(newsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("获取文章失败: %w", err)
	}

	comment := &models.Comment{
		AuthorID: authorID,
		NewsID:   newsID,
		Text:     text,
		PostedAt: time.Now(),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("创建评论失败: %w", err)
	}
	return comment, nil
}

// Update 编辑评论内容。
// TODO: 仅校验了登录态，未校验当前用户是否为评论作者，
// 与原始行为保持一致，待产品确认后补充作者校验。
func (s *CommentService) Update(id uint, text string) (*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("获取评论失败: %w", err)
	}

	if err := s.commentRepo.Update(id, text); err != nil {
		return nil, fmt.Errorf("更新评论失败: %w", err)
	}
	return s.commentRepo.GetByID(id)
}

// Delete 删除评论，同样未做作者校验（见 Update）
func (s *CommentService) Delete(id uint) error {
	if _, err := s.commentRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("获取评论失败: %w", err)
	}
	return s.commentRepo.Delete(id)
}
