package handler

import (
	"errors"
	"strconv"

	"newsgo/internal/dto"
	"newsgo/internal/middleware"
	"newsgo/internal/service"
	"newsgo/internal/utils"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论处理器。
// 编辑与删除仅要求登录态，未校验评论归属（与原始行为一致）。
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler 创建评论处理器
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论
// @Summary 在文章下发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Param request body dto.CommentRequest true "评论内容"
// @Success 200 {object} utils.Response
// @Router /api/news/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	newsID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的文章ID")
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(userID, uint(newsID), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "评论成功", gin.H{"id": comment.ID, "news_id": comment.NewsID})
}

// Update 编辑评论
// @Summary 编辑评论
// @Tags 评论
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} utils.Response
// @Router /api/comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(uint(id), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "评论已更新", gin.H{"id": comment.ID, "news_id": comment.NewsID})
}

// Delete 删除评论
// @Summary 删除评论
// @Tags 评论
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} utils.Response
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的评论ID")
		return
	}

	if err := h.commentService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "评论已删除", nil)
}
