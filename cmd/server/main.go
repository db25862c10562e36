package main

import (
	"log"
	"os"

	"newsgo/internal/captcha"
	"newsgo/internal/config"
	"newsgo/internal/models"
	"newsgo/internal/repository"
	"newsgo/internal/router"
	"newsgo/internal/service"
	"newsgo/internal/utils"
	"newsgo/pkg/mailqueue"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	// 加载配置（从项目根目录读取）
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// 初始化数据库
	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	db := models.GetDB()

	// 初始化Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})

	// 初始化工具
	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)
	tokens := utils.NewActivationTokenGenerator(
		cfg.Activation.SecretKey,
		cfg.Activation.GetExpireDuration(),
	)

	// 初始化管理员账户
	userRepo := repository.NewUserRepository(db)
	captchaService := captcha.NewService(redisClient, logger, cfg.Captcha.Length, cfg.Captcha.GetExpireDuration())
	mailProducer := mailqueue.NewProducer(redisClient, logger, cfg.Redis.MailStream)
	authService := service.NewAuthService(userRepo, jwtManager, tokens, captchaService, mailProducer, cfg)
	if err := authService.InitAdmin(); err != nil {
		logger.Warnf("初始化管理员失败: %v", err)
	}

	// 设置路由
	r := router.SetupRouter(cfg, jwtManager, tokens, logger, db, redisClient)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
