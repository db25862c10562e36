package mailqueue

import "time"

// MailKind 邮件任务类型
type MailKind string

const (
	// KindActivation 账号激活邮件
	KindActivation MailKind = "activation"
)

// MailMessage 邮件任务消息，只携带用户标识，
// 邮件内容由消费端按用户当前状态渲染。
type MailMessage struct {
	Kind       MailKind  `json:"kind"`
	UserID     uint      `json:"user_id"`
	Attempt    int       `json:"attempt"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewActivationMessage 创建激活邮件任务
func NewActivationMessage(userID uint) *MailMessage {
	return &MailMessage{
		Kind:       KindActivation,
		UserID:     userID,
		Attempt:    0,
		EnqueuedAt: time.Now(),
	}
}
