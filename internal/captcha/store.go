package captcha

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisStore 基于Redis的验证码答案存储，实现 base64Captcha.Store。
// 答案带TTL，校验成功后立即删除，保证一次性使用。
type RedisStore struct {
	client    *redis.Client
	logger    *logrus.Logger
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore 创建验证码存储
func NewRedisStore(client *redis.Client, logger *logrus.Logger, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		logger:    logger,
		keyPrefix: "newsgo:captcha:",
		ttl:       ttl,
	}
}

// Set 保存验证码答案
func (s *RedisStore) Set(id string, value string) error {
	return s.client.Set(context.Background(), s.keyPrefix+id, value, s.ttl).Err()
}

// Get 获取验证码答案，clear为true时删除
func (s *RedisStore) Get(id string, clear bool) string {
	ctx := context.Background()
	key := s.keyPrefix + id

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warnf("读取验证码失败: %v", err)
		}
		return ""
	}

	if clear {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			s.logger.Warnf("删除验证码失败: %v", err)
		}
	}

	return value
}

// Verify 校验验证码答案
func (s *RedisStore) Verify(id, answer string, clear bool) bool {
	if id == "" || answer == "" {
		return false
	}
	stored := s.Get(id, clear)
	return stored != "" && stored == answer
}
