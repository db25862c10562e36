package mailqueue

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Handler 处理一条邮件任务
type Handler func(ctx context.Context, msg *MailMessage) error

// Consumer 邮件任务消费者，由mailworker使用。
// 处理失败的消息带计数重新入队，超过重试上限后丢弃并记录。
type Consumer struct {
	queue      *Queue
	logger     *logrus.Logger
	groupName  string
	consumerID string
	blockTime  time.Duration
	batchSize  int64
	maxRetry   int
	handler    Handler
}

// ConsumerOption 消费者配置选项
type ConsumerOption func(*Consumer)

// WithBlockTime 设置阻塞等待时间
func WithBlockTime(d time.Duration) ConsumerOption {
	return func(c *Consumer) {
		c.blockTime = d
	}
}

// WithBatchSize 设置每次读取的消息数量
func WithBatchSize(size int64) ConsumerOption {
	return func(c *Consumer) {
		c.batchSize = size
	}
}

// WithMaxRetry 设置最大重试次数
func WithMaxRetry(n int) ConsumerOption {
	return func(c *Consumer) {
		c.maxRetry = n
	}
}

// NewConsumer 创建邮件任务消费者
func NewConsumer(rdb *redis.Client, logger *logrus.Logger, streamName, groupName, consumerID string, handler Handler, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		queue:      NewQueue(rdb, logger, streamName),
		logger:     logger,
		groupName:  groupName,
		consumerID: consumerID,
		blockTime:  5 * time.Second,
		batchSize:  10,
		maxRetry:   3,
		handler:    handler,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run 启动消费循环，直到ctx取消
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.queue.CreateConsumerGroup(ctx, c.groupName); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"stream":   c.queue.streamName,
		"group":    c.groupName,
		"consumer": c.consumerID,
	}).Info("mail consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("mail consumer stopped")
			return ctx.Err()
		default:
		}

		streams, err := c.queue.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupName,
			Consumer: c.consumerID,
			Streams:  []string{c.queue.streamName, ">"},
			Count:    c.batchSize,
			Block:    c.blockTime,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			c.logger.Warnf("读取邮件队列失败: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				c.process(ctx, message)
			}
		}
	}
}

// process 处理单条消息并确认
func (c *Consumer) process(ctx context.Context, raw redis.XMessage) {
	defer c.ack(ctx, raw.ID)

	data, ok := raw.Values["data"].(string)
	if !ok {
		c.logger.WithField("msg_id", raw.ID).Warn("malformed mail message, dropped")
		return
	}

	msg, err := parseMessage(data)
	if err != nil {
		c.logger.WithField("msg_id", raw.ID).Warnf("解析邮件消息失败: %v", err)
		return
	}

	if err := c.handler(ctx, msg); err == nil {
		return
	} else if msg.Attempt+1 >= c.maxRetry {
		c.logger.WithFields(logrus.Fields{
			"user_id": msg.UserID,
			"attempt": msg.Attempt + 1,
			"error":   err.Error(),
		}).Error("mail delivery failed, giving up")
		return
	} else {
		msg.Attempt++
		if pubErr := c.queue.Publish(ctx, msg); pubErr != nil {
			c.logger.Errorf("重新入队失败: %v", pubErr)
		}
	}
}

// ack 确认消息
func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.queue.rdb.XAck(ctx, c.queue.streamName, c.groupName, msgID).Err(); err != nil {
		c.logger.Warnf("确认消息失败: %v", err)
	}
}
