package mailer

import (
	"context"
	"fmt"
	"strings"

	"newsgo/internal/config"
	"newsgo/internal/models"
	"newsgo/internal/repository"
	"newsgo/internal/utils"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer 激活邮件发送器。根据用户当前状态生成激活链接，
// 渲染HTML邮件并通过SMTP投递。
type Mailer struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	tokens   *utils.ActivationTokenGenerator
	logger   *logrus.Logger
}

// NewMailer 创建激活邮件发送器
func NewMailer(cfg *config.Config, userRepo *repository.UserRepository, tokens *utils.ActivationTokenGenerator, logger *logrus.Logger) *Mailer {
	return &Mailer{
		cfg:      cfg,
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// SendActivation 发送激活邮件
func (m *Mailer) SendActivation(ctx context.Context, userID uint) error {
	if m.cfg.SMTP.Host == "" || m.cfg.SMTP.FromEmail == "" {
		return fmt.Errorf("SMTP配置缺失")
	}

	user, err := m.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("加载用户失败: %w", err)
	}
	if user.IsActive {
		// 激活后重复投递的任务直接跳过
		m.logger.WithField("user_id", userID).Info("user already active, skip activation mail")
		return nil
	}

	link := m.ActivationLink(user)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTP.FromEmail)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", "请确认您的邮箱")
	msg.SetBody("text/html", buildActivationBody(user, link))

	d := gomail.NewDialer(m.cfg.SMTP.Host, m.cfg.SMTP.Port, m.cfg.SMTP.Username, m.cfg.SMTP.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"to":      user.Email,
	}).Info("activation email sent")
	return nil
}

// ActivationLink 生成用户的激活链接
func (m *Mailer) ActivationLink(user *models.User) string {
	uid := utils.EncodeUID(user.ID)
	token := m.tokens.MakeToken(user)
	base := strings.TrimRight(m.cfg.Site.BaseURL, "/")
	return fmt.Sprintf("%s/api/activate/%s/%s", base, uid, token)
}

// buildActivationBody 渲染激活邮件HTML正文
func buildActivationBody(user *models.User, link string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>欢迎，%s</h2>
    <p>请点击下面的链接完成账号激活：</p>
    <p><a href="%s">%s</a></p>
    <p>如果这不是您本人的操作，请忽略此邮件。</p>
  </div>
</body>
</html>`, user.Name, link, link)
}
