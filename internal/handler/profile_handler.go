package handler

import (
	"errors"

	"newsgo/internal/config"
	"newsgo/internal/dto"
	"newsgo/internal/middleware"
	"newsgo/internal/service"
	"newsgo/internal/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 个人资料处理器
type ProfileHandler struct {
	profileService *service.ProfileService
	cfg            *config.Config
}

// NewProfileHandler 创建个人资料处理器
func NewProfileHandler(profileService *service.ProfileService, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		cfg:            cfg,
	}
}

// Get 查看个人资料
// @Summary 查看个人资料
// @Tags 个人资料
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	info, err := h.profileService.Get(userID)
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.SuccessResponse(c, info)
}

// Update 更新姓名与年龄
// @Summary 更新姓名与年龄
// @Tags 个人资料
// @Accept json
// @Security BearerAuth
// @Param request body dto.ProfileUpdateRequest true "资料"
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	info, err := h.profileService.UpdateInfo(userID, &req)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "资料已更新", info)
}

// UpdateImage 更新头像
// @Summary 上传并更新头像
// @Tags 个人资料
// @Accept multipart/form-data
// @Security BearerAuth
// @Param image formData file true "头像图片"
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/profile/image [post]
func (h *ProfileHandler) UpdateImage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "未选择图片")
		return
	}

	name, err := utils.SaveImage(file, h.cfg.Uploads.Dir, h.cfg.Uploads.GetMaxSize())
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	info, err := h.profileService.UpdateImage(userID, name)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "头像已更新", info)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 个人资料
// @Accept json
// @Security BearerAuth
// @Param request body dto.PasswordChangeRequest true "新旧密码"
// @Success 200 {object} utils.Response
// @Router /api/profile/password [post]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	var req dto.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.profileService.ChangePassword(userID, &req); err != nil {
		if errors.Is(err, service.ErrWrongOldPassword) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "密码修改成功", nil)
}
