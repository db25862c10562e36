package handler

import (
	"errors"
	"strconv"

	"newsgo/internal/service"
	"newsgo/internal/utils"

	"github.com/gin-gonic/gin"
)

// NewsHandler 新闻处理器
type NewsHandler struct {
	newsService *service.NewsService
}

// NewNewsHandler 创建新闻处理器
func NewNewsHandler(newsService *service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// List 新闻列表
// @Summary 新闻列表，支持按分类过滤
// @Tags 新闻
// @Produce json
// @Param category_id query string false "分类ID，无效时忽略"
// @Success 200 {object} utils.Response{data=dto.NewsListResponse}
// @Router /api/news [get]
func (h *NewsHandler) List(c *gin.Context) {
	resp, err := h.newsService.List(c.Query("category_id"))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, resp)
}

// Detail 文章详情
// @Summary 文章详情及其评论
// @Tags 新闻
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} utils.Response{data=dto.NewsDetailResponse}
// @Router /api/news/{id} [get]
func (h *NewsHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的文章ID")
		return
	}

	resp, err := h.newsService.Detail(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, resp)
}
