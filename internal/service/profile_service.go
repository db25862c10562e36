package service

import (
	"errors"
	"fmt"

	"newsgo/internal/dto"
	"newsgo/internal/repository"
	"newsgo/internal/utils"
)

// ErrWrongOldPassword 旧密码校验失败
var ErrWrongOldPassword = errors.New("旧密码错误")

// ProfileService 个人资料服务。姓名年龄、头像、密码
// 三类更新互相独立，各走各的接口。
type ProfileService struct {
	userRepo *repository.UserRepository
}

// NewProfileService 创建个人资料服务
func NewProfileService(userRepo *repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// Get 获取个人资料
func (s *ProfileService) Get(userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, errors.New("用户不存在")
	}
	info := UserToInfo(user)
	return &info, nil
}

// UpdateInfo 更新姓名与年龄
func (s *ProfileService) UpdateInfo(userID uint, req *dto.ProfileUpdateRequest) (*dto.UserInfo, error) {
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"name": req.Name,
		"age":  req.Age,
	}); err != nil {
		return nil, fmt.Errorf("更新资料失败: %w", err)
	}
	return s.Get(userID)
}

// UpdateImage 更新头像文件名
func (s *ProfileService) UpdateImage(userID uint, image string) (*dto.UserInfo, error) {
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"image": image,
	}); err != nil {
		return nil, fmt.Errorf("更新头像失败: %w", err)
	}
	return s.Get(userID)
}

// ChangePassword 修改密码，需先校验旧密码
func (s *ProfileService) ChangePassword(userID uint, req *dto.PasswordChangeRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return errors.New("用户不存在")
	}

	if err := utils.CheckPassword(req.OldPassword, user.PasswordHash); err != nil {
		return ErrWrongOldPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword1)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"password_hash": hashed,
	}); err != nil {
		return fmt.Errorf("更新密码失败: %w", err)
	}
	return nil
}
