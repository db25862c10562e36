package captcha

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mojocn/base64Captcha"
	"github.com/sirupsen/logrus"
)

// Service 注册验证码服务，生成数字图形验证码
type Service struct {
	captcha *base64Captcha.Captcha
	store   *RedisStore
}

// NewService 创建验证码服务
func NewService(client *redis.Client, logger *logrus.Logger, length int, ttl time.Duration) *Service {
	store := NewRedisStore(client, logger, ttl)
	driver := base64Captcha.NewDriverDigit(80, 240, length, 0.7, 80)
	return &Service{
		captcha: base64Captcha.NewCaptcha(driver, store),
		store:   store,
	}
}

// Generate 生成验证码，返回ID和base64图片
func (s *Service) Generate() (string, string, error) {
	id, b64, err := s.captcha.Generate()
	if err != nil {
		return "", "", fmt.Errorf("生成验证码失败: %w", err)
	}
	return id, b64, nil
}

// Verify 校验验证码，无论对错都使该验证码失效
func (s *Service) Verify(id, answer string) bool {
	return s.store.Verify(id, answer, true)
}
