package mailqueue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Queue 封装 Redis Streams 的邮件任务队列操作
type Queue struct {
	rdb        *redis.Client
	logger     *logrus.Logger
	streamName string
}

// NewQueue 创建邮件任务队列
func NewQueue(rdb *redis.Client, logger *logrus.Logger, streamName string) *Queue {
	if streamName == "" {
		streamName = "newsgo:mail:stream"
	}
	return &Queue{
		rdb:        rdb,
		logger:     logger,
		streamName: streamName,
	}
}

// Publish 发布一条邮件任务到队列
func (q *Queue) Publish(ctx context.Context, msg *MailMessage) error {
	if msg == nil {
		return fmt.Errorf("message is nil")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: q.streamName,
		MaxLen: 100000,
		Approx: true,
		Values: map[string]interface{}{"data": string(data)},
	}

	msgID, err := q.rdb.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("xadd failed: %w", err)
	}

	q.logger.WithFields(logrus.Fields{
		"stream":  q.streamName,
		"msg_id":  msgID,
		"user_id": msg.UserID,
		"kind":    msg.Kind,
	}).Debug("mail message published")

	return nil
}

// CreateConsumerGroup 创建消费者组，已存在时忽略
func (q *Queue) CreateConsumerGroup(ctx context.Context, groupName string) error {
	err := q.rdb.XGroupCreateMkStream(ctx, q.streamName, groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("create consumer group: %w", err)
	}
	return nil
}

// Length 获取队列中消息数量
func (q *Queue) Length(ctx context.Context) (int64, error) {
	length, err := q.rdb.XLen(ctx, q.streamName).Result()
	if err != nil {
		return 0, fmt.Errorf("xlen failed: %w", err)
	}
	return length, nil
}

// parseMessage 解析队列消息
func parseMessage(data string) (*MailMessage, error) {
	var msg MailMessage
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		return nil, fmt.Errorf("unmarshal message: %w", err)
	}
	return &msg, nil
}
