package router

import (
	"newsgo/internal/captcha"
	"newsgo/internal/config"
	"newsgo/internal/handler"
	"newsgo/internal/middleware"
	"newsgo/internal/repository"
	"newsgo/internal/service"
	"newsgo/internal/utils"
	"newsgo/pkg/mailqueue"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	tokens *utils.ActivationTokenGenerator,
	logger *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.InitValidator()

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "新闻发布系统 API",
			"version": "1.0.0",
		})
	})

	// 上传的图片直接静态伺服
	r.Static("/media", cfg.Uploads.Dir)

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 初始化Service
	captchaService := captcha.NewService(redisClient, logger, cfg.Captcha.Length, cfg.Captcha.GetExpireDuration())
	mailProducer := mailqueue.NewProducer(redisClient, logger, cfg.Redis.MailStream)
	authService := service.NewAuthService(userRepo, jwtManager, tokens, captchaService, mailProducer, cfg)
	newsService := service.NewNewsService(newsRepo, categoryRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, newsRepo)
	profileService := service.NewProfileService(userRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService, captchaService)
	newsHandler := handler.NewNewsHandler(newsService)
	commentHandler := handler.NewCommentHandler(commentService)
	profileHandler := handler.NewProfileHandler(profileService, cfg)
	adminHandler := handler.NewAdminHandler(newsService, userRepo, cfg)

	// API路由组
	api := r.Group("/api")
	{
		// 公开路由
		api.GET("/captcha", authHandler.GetCaptcha)
		api.POST("/register", authHandler.Register)
		api.GET("/activate/:uid/:token", authHandler.Activate)
		api.POST("/login", authHandler.Login)
		api.GET("/news", newsHandler.List)
		api.GET("/news/:id", newsHandler.Detail)

		// 认证路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtManager))
		{
			authorized.GET("/me", authHandler.GetMe)
			authorized.POST("/logout", authHandler.Logout)

			// 评论
			authorized.POST("/news/:id/comments", commentHandler.Create)
			authorized.PUT("/comments/:id", commentHandler.Update)
			authorized.DELETE("/comments/:id", commentHandler.Delete)

			// 个人资料
			authorized.GET("/profile", profileHandler.Get)
			authorized.PUT("/profile", profileHandler.Update)
			authorized.POST("/profile/image", profileHandler.UpdateImage)
			authorized.POST("/profile/password", profileHandler.ChangePassword)

			// 管理端接口
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.StaffMiddleware())
			{
				adminGroup.GET("/categories", adminHandler.ListCategories)
				adminGroup.POST("/categories", adminHandler.CreateCategory)
				adminGroup.DELETE("/categories/:id", adminHandler.DeleteCategory)

				adminGroup.POST("/news", adminHandler.CreateNews)
				adminGroup.PUT("/news/:id", adminHandler.UpdateNews)
				adminGroup.DELETE("/news/:id", adminHandler.DeleteNews)

				adminGroup.GET("/users", adminHandler.ListUsers)
				adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			}
		}
	}

	return r
}
