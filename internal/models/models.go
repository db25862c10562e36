package models

import (
	"fmt"
	"strings"

	"newsgo/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 全局数据库实例
var DB *gorm.DB

// InitDB 初始化数据库
func InitDB(cfg *config.Config) error {
	var err error

	// 级联删除、置空依赖 SQLite 的外键开关
	dsn := cfg.Database.Path
	if !strings.Contains(dsn, "?") {
		dsn = fmt.Sprintf("%s?_foreign_keys=on", dsn)
	}

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return AutoMigrate()
}

// AutoMigrate 自动迁移数据库表
func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Category{},
		&News{},
		&Comment{},
	)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
