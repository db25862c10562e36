package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"newsgo/internal/models"
)

// ActivationTokenGenerator 账号激活令牌生成器。
//
// 令牌格式为 "<base36时间戳>-<hmac>"。签名覆盖用户的
// 密码哈希、最后登录时间和激活状态：激活成功后这些状态
// 发生变化，旧令牌随之失效，无需在服务端记录已用令牌。
type ActivationTokenGenerator struct {
	secret []byte
	expiry time.Duration
}

// NewActivationTokenGenerator 创建激活令牌生成器
func NewActivationTokenGenerator(secret string, expiry time.Duration) *ActivationTokenGenerator {
	return &ActivationTokenGenerator{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// MakeToken 为用户生成激活令牌
func (g *ActivationTokenGenerator) MakeToken(user *models.User) string {
	return g.makeTokenAt(user, time.Now().Unix())
}

// CheckToken 校验激活令牌是否有效且未过期
func (g *ActivationTokenGenerator) CheckToken(user *models.User, token string) bool {
	if user == nil || token == "" {
		return false
	}

	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return false
	}

	ts, err := strconv.ParseInt(parts[0], 36, 64)
	if err != nil {
		return false
	}

	// 先校验签名再校验时效
	expected := g.makeTokenAt(user, ts)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return false
	}

	issued := time.Unix(ts, 0)
	if time.Since(issued) > g.expiry {
		return false
	}

	return true
}

// makeTokenAt 按给定时间戳生成令牌
func (g *ActivationTokenGenerator) makeTokenAt(user *models.User, ts int64) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(g.hashState(user, ts)))
	sig := hex.EncodeToString(mac.Sum(nil))[:40]
	return fmt.Sprintf("%s-%s", strconv.FormatInt(ts, 36), sig)
}

// hashState 拼接参与签名的用户状态
func (g *ActivationTokenGenerator) hashState(user *models.User, ts int64) string {
	var lastLogin int64
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.Unix()
	}
	return fmt.Sprintf("%d|%s|%s|%d|%t|%d",
		user.ID, user.Email, user.PasswordHash, lastLogin, user.IsActive, ts)
}

// EncodeUID 将用户ID编码为URL安全的base64
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID 解码激活链接中的用户ID
func DecodeUID(encoded string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, fmt.Errorf("解码用户ID失败: %w", err)
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("无效的用户ID: %w", err)
	}
	return uint(id), nil
}
