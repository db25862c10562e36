package handler

import (
	"errors"
	"strconv"

	"newsgo/internal/config"
	"newsgo/internal/dto"
	"newsgo/internal/repository"
	"newsgo/internal/service"
	"newsgo/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端处理器，负责分类与新闻的维护以及用户管理
type AdminHandler struct {
	newsService *service.NewsService
	userRepo    *repository.UserRepository
	cfg         *config.Config
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(newsService *service.NewsService, userRepo *repository.UserRepository, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		newsService: newsService,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

// ListCategories 分类列表
func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.newsService.ListCategories()
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, categories)
}

// CreateCategory 创建分类
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	category, err := h.newsService.CreateCategory(req.Name)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "分类已创建", dto.CategoryInfo{ID: category.ID, Name: category.Name})
}

// DeleteCategory 删除分类，引用它的新闻分类置空
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的分类ID")
		return
	}

	if err := h.newsService.DeleteCategory(uint(id)); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "分类已删除", nil)
}

// CreateNews 创建新闻（multipart，含图片）
func (h *AdminHandler) CreateNews(c *gin.Context) {
	var form dto.NewsForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "新闻图片不能为空")
		return
	}
	image, err := utils.SaveImage(file, h.cfg.Uploads.Dir, h.cfg.Uploads.GetMaxSize())
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	news, err := h.newsService.Create(&form, image)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "新闻已发布", gin.H{"id": news.ID})
}

// UpdateNews 更新新闻，图片可选
func (h *AdminHandler) UpdateNews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的文章ID")
		return
	}

	var form dto.NewsForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var image string
	if file, err := c.FormFile("image"); err == nil {
		image, err = utils.SaveImage(file, h.cfg.Uploads.Dir, h.cfg.Uploads.GetMaxSize())
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}

	news, err := h.newsService.Update(uint(id), &form, image)
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "新闻已更新", gin.H{"id": news.ID})
}

// DeleteNews 删除新闻，其评论级联删除
func (h *AdminHandler) DeleteNews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的文章ID")
		return
	}

	if err := h.newsService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "新闻已删除", nil)
}

// ListUsers 用户列表
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}

	users, total, err := h.userRepo.List((page-1)*perPage, perPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	resp := dto.UserListResponse{
		Users: make([]dto.UserInfo, 0, len(users)),
		Total: total,
	}
	for i := range users {
		resp.Users = append(resp.Users, service.UserToInfo(&users[i]))
	}
	utils.SuccessResponse(c, resp)
}

// DeleteUser 删除用户，其评论级联删除
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的用户ID")
		return
	}

	if _, err := h.userRepo.GetByID(uint(id)); err != nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if err := h.userRepo.Delete(uint(id)); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "用户已删除", nil)
}
