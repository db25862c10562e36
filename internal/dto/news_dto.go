package dto

import "time"

// CategoryInfo 分类信息
type CategoryInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewsItem 新闻条目
type NewsItem struct {
	ID       uint          `json:"id"`
	Title    string        `json:"title"`
	Text     string        `json:"text"`
	Image    string        `json:"image"`
	Category *CategoryInfo `json:"category,omitempty"`
	PostedAt time.Time     `json:"posted_at"`
}

// NewsListResponse 新闻列表响应，带分类列表供过滤使用
type NewsListResponse struct {
	News       []NewsItem     `json:"news"`
	Categories []CategoryInfo `json:"categories"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID         uint      `json:"id"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	PostedAt   time.Time `json:"posted_at"`
}

// NewsDetailResponse 新闻详情响应
type NewsDetailResponse struct {
	News          NewsItem      `json:"news"`
	Comments      []CommentInfo `json:"comments"`
	CommentsCount int64         `json:"comments_count"`
}

// CommentRequest 评论创建/编辑请求
type CommentRequest struct {
	Text string `json:"text" binding:"required,max=5000"`
}
