package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 允许的图片扩展名
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// SaveImage 保存上传的图片到目标目录，返回存储文件名。
// 存储名使用uuid，避免用户文件名冲突或路径穿越。
func SaveImage(file *multipart.FileHeader, dir string, maxSize int64) (string, error) {
	if file == nil {
		return "", fmt.Errorf("未选择文件")
	}
	if maxSize > 0 && file.Size > maxSize {
		return "", fmt.Errorf("文件大小超过限制: %d字节", maxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("不支持的图片格式: %s", ext)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %w", err)
	}

	name := uuid.New().String() + ext
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("读取上传文件失败: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("创建目标文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}

	return name, nil
}
