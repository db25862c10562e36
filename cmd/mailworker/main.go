package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"newsgo/internal/config"
	"newsgo/internal/mailer"
	"newsgo/internal/models"
	"newsgo/internal/repository"
	"newsgo/internal/utils"
	"newsgo/pkg/mailqueue"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})

	userRepo := repository.NewUserRepository(models.GetDB())
	tokens := utils.NewActivationTokenGenerator(
		cfg.Activation.SecretKey,
		cfg.Activation.GetExpireDuration(),
	)
	m := mailer.NewMailer(cfg, userRepo, tokens, logger)

	hostname, _ := os.Hostname()
	consumer := mailqueue.NewConsumer(
		redisClient,
		logger,
		cfg.Redis.MailStream,
		"mailworker",
		fmt.Sprintf("mailworker-%s-%d", hostname, os.Getpid()),
		func(ctx context.Context, msg *mailqueue.MailMessage) error {
			return m.SendActivation(ctx, msg.UserID)
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("邮件消费者退出: %v", err)
	}
}
