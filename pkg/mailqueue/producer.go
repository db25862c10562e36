package mailqueue

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Producer 邮件任务生产者，由API服务使用。
// 注册成功后投递激活邮件任务，请求不等待邮件发送结果。
type Producer struct {
	queue  *Queue
	logger *logrus.Logger
}

// NewProducer 创建邮件任务生产者
func NewProducer(rdb *redis.Client, logger *logrus.Logger, streamName string) *Producer {
	return &Producer{
		queue:  NewQueue(rdb, logger, streamName),
		logger: logger,
	}
}

// SubmitActivation 投递一条激活邮件任务
func (p *Producer) SubmitActivation(ctx context.Context, userID uint) error {
	if userID == 0 {
		return fmt.Errorf("invalid user id: %d", userID)
	}

	msg := NewActivationMessage(userID)
	if err := p.queue.Publish(ctx, msg); err != nil {
		p.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("submit activation mail failed")
		return err
	}

	p.logger.WithField("user_id", userID).Info("activation mail submitted")
	return nil
}

// QueueLength 获取当前队列长度
func (p *Producer) QueueLength(ctx context.Context) (int64, error) {
	return p.queue.Length(ctx)
}
