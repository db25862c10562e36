package handler

import (
	"errors"

	"newsgo/internal/captcha"
	"newsgo/internal/dto"
	"newsgo/internal/middleware"
	"newsgo/internal/service"
	"newsgo/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
	captcha     *captcha.Service
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService, captchaService *captcha.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		captcha:     captchaService,
	}
}

// GetCaptcha 获取注册验证码
// @Summary 获取注册验证码
// @Tags 认证
// @Produce json
// @Success 200 {object} utils.Response{data=dto.CaptchaResponse}
// @Router /api/captcha [get]
func (h *AuthHandler) GetCaptcha(c *gin.Context) {
	id, image, err := h.captcha.Generate()
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, dto.CaptchaResponse{
		CaptchaID: id,
		Image:     image,
	})
}

// Register 用户注册
// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "注册成功，请查收激活邮件", service.UserToInfo(user))
}

// Activate 激活账号
// @Summary 通过激活链接激活账号
// @Tags 认证
// @Produce json
// @Param uid path string true "编码后的用户ID"
// @Param token path string true "激活令牌"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/activate/{uid}/{token} [get]
func (h *AuthHandler) Activate(c *gin.Context) {
	resp, err := h.authService.Activate(c.Request.Context(), c.Param("uid"), c.Param("token"))
	if err != nil {
		// 任何解码、查找、校验失败都归并为一个客户端错误
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "账号激活成功", resp)
}

// Login 用户登录
// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrInactiveAccount) {
			utils.Unauthorized(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "登录成功", resp)
}

// Logout 用户登出
// @Summary 用户登出
// @Tags 认证
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// JWT是无状态的,登出只需客户端删除Token
	utils.SuccessWithMessage(c, "登出成功", nil)
}

// GetMe 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	userInfo, err := h.authService.GetMe(userID)
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.SuccessResponse(c, userInfo)
}
