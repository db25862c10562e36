package dto

// CategoryCreateRequest 创建分类请求
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=60"`
}

// NewsForm 新闻创建/更新表单（multipart，图片单独上传）
type NewsForm struct {
	Title      string `form:"title" binding:"required,max=100"`
	Text       string `form:"text" binding:"required"`
	CategoryID *uint  `form:"category_id"`
}

// UserListResponse 用户列表响应
type UserListResponse struct {
	Users []UserInfo `json:"users"`
	Total int64      `json:"total"`
}
