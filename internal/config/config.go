package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis_service"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Admin      AdminConfig      `mapstructure:"admin"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	Activation ActivationConfig `mapstructure:"activation"`
	Captcha    CaptchaConfig    `mapstructure:"captcha"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Site       SiteConfig       `mapstructure:"site"`
	Uploads    UploadsConfig    `mapstructure:"uploads"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress 获取服务器地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	DB         int    `mapstructure:"db"`
	Password   string `mapstructure:"password"`
	MailStream string `mapstructure:"mail_stream"`
}

// GetAddress 获取Redis地址
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig JWT配置
type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	Algorithm     string `mapstructure:"algorithm"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

// GetExpireDuration 获取过期时间
func (j *JWTConfig) GetExpireDuration() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// AdminConfig 管理员（超级用户）种子账户配置
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Name     string `mapstructure:"name"`
	Age      int    `mapstructure:"age"`
	Password string `mapstructure:"password"`
}

// SMTPConfig 邮件发送配置
type SMTPConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	FromEmail string `mapstructure:"from_email"`
}

// ActivationConfig 账号激活配置
type ActivationConfig struct {
	SecretKey   string `mapstructure:"secret_key"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// GetExpireDuration 获取激活令牌有效期
func (a *ActivationConfig) GetExpireDuration() time.Duration {
	return time.Duration(a.ExpireHours) * time.Hour
}

// CaptchaConfig 验证码配置
type CaptchaConfig struct {
	ExpireMinutes int `mapstructure:"expire_minutes"`
	Length        int `mapstructure:"length"`
}

// GetExpireDuration 获取验证码有效期
func (c *CaptchaConfig) GetExpireDuration() time.Duration {
	return time.Duration(c.ExpireMinutes) * time.Minute
}

// CORSConfig CORS配置
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// SiteConfig 站点配置，BaseURL 用于拼接激活链接
type SiteConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// UploadsConfig 图片上传配置
type UploadsConfig struct {
	Dir       string `mapstructure:"dir"`
	MaxSizeMB int64  `mapstructure:"max_size_mb"`
}

// GetMaxSize 获取上传大小上限（字节）
func (u *UploadsConfig) GetMaxSize() int64 {
	return u.MaxSizeMB * 1024 * 1024
}
