package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsgo/internal/config"
	"newsgo/internal/dto"
	"newsgo/internal/models"
	"newsgo/internal/repository"
	"newsgo/internal/utils"
)

// 登录、激活的用户可见错误。登录失败统一为一条消息，
// 不泄露邮箱是否存在；账号未激活单独提示。
var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInactiveAccount    = errors.New("账号未激活")
	ErrInvalidActivation  = errors.New("激活链接无效或已过期")
)

// CaptchaVerifier 注册验证码校验
type CaptchaVerifier interface {
	Verify(id, answer string) bool
}

// MailProducer 激活邮件任务投递
type MailProducer interface {
	SubmitActivation(ctx context.Context, userID uint) error
}

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	tokens     *utils.ActivationTokenGenerator
	captcha    CaptchaVerifier
	mail       MailProducer
	cfg        *config.Config
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo *repository.UserRepository,
	jwtManager *utils.JWTManager,
	tokens *utils.ActivationTokenGenerator,
	captcha CaptchaVerifier,
	mail MailProducer,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		tokens:     tokens,
		captcha:    captcha,
		mail:       mail,
		cfg:        cfg,
	}
}

// Register 用户注册。创建未激活用户并投递一条激活邮件任务。
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if !s.captcha.Verify(req.CaptchaID, req.CaptchaAnswer) {
		return nil, errors.New("验证码错误")
	}

	email := models.NormalizeEmail(req.Email)
	if email == "" {
		return nil, errors.New("邮箱不能为空")
	}

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("检查邮箱失败: %w", err)
	}
	if exists {
		return nil, errors.New("该邮箱已被注册")
	}

	hashedPassword, err := utils.HashPassword(req.Password1)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         req.Name,
		Age:          18,
		Image:        "default.jpg",
		PasswordHash: hashedPassword,
		IsStaff:      false,
		IsSuperuser:  false,
		IsActive:     false,
		DateJoined:   time.Now(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	if err := s.mail.SubmitActivation(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("投递激活邮件任务失败: %w", err)
	}

	return user, nil
}

// Activate 校验激活链接并激活账号，成功后直接建立会话。
// 令牌签名绑定激活状态与最后登录时间，激活后同一令牌立即失效。
func (s *AuthService) Activate(ctx context.Context, uidEncoded, token string) (*dto.LoginResponse, error) {
	uid, err := utils.DecodeUID(uidEncoded)
	if err != nil {
		return nil, ErrInvalidActivation
	}

	user, err := s.userRepo.GetByID(uid)
	if err != nil {
		return nil, ErrInvalidActivation
	}

	if !s.tokens.CheckToken(user, token) {
		return nil, ErrInvalidActivation
	}

	now := time.Now()
	user.IsActive = true
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("激活账号失败: %w", err)
	}

	return s.buildSession(user)
}

// Login 用户登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(models.NormalizeEmail(req.Email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	now := time.Now()
	if err := s.userRepo.MarkLogin(user.ID, now); err != nil {
		return nil, fmt.Errorf("更新登录时间失败: %w", err)
	}
	user.LastLogin = &now

	return s.buildSession(user)
}

// GetMe 获取当前用户信息
func (s *AuthService) GetMe(userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, errors.New("用户不存在")
	}
	info := UserToInfo(user)
	return &info, nil
}

// CreateSuperuser 创建超级用户，is_staff 与 is_superuser 强制为 true
func (s *AuthService) CreateSuperuser(email, password, name string, age int) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, errors.New("邮箱不能为空")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		Age:          age,
		Image:        "default.jpg",
		PasswordHash: hashedPassword,
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
		DateJoined:   time.Now(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("创建超级用户失败: %w", err)
	}

	return user, nil
}

// InitAdmin 初始化管理员账户，已存在则跳过
func (s *AuthService) InitAdmin() error {
	exists, err := s.userRepo.ExistsByEmail(models.NormalizeEmail(s.cfg.Admin.Email))
	if err != nil {
		return fmt.Errorf("检查管理员失败: %w", err)
	}
	if exists {
		return nil
	}

	_, err = s.CreateSuperuser(s.cfg.Admin.Email, s.cfg.Admin.Password, s.cfg.Admin.Name, s.cfg.Admin.Age)
	return err
}

// buildSession 签发JWT并组装登录响应
func (s *AuthService) buildSession(user *models.User) (*dto.LoginResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        UserToInfo(user),
	}, nil
}

// UserToInfo 模型到用户信息DTO的映射
func UserToInfo(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Age:        user.Age,
		Image:      user.Image,
		IsStaff:    user.IsStaff,
		IsActive:   user.IsActive,
		DateJoined: user.DateJoined,
	}
}
