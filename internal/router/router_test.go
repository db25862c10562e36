package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newsgo/internal/config"
	"newsgo/internal/models"
	"newsgo/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	rdb    *redis.Client
	jwt    *utils.JWTManager
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.News{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 18080},
		JWT: config.JWTConfig{
			SecretKey:     "test-secret",
			Algorithm:     "HS256",
			ExpireMinutes: 60,
		},
		Activation: config.ActivationConfig{SecretKey: "test-secret", ExpireHours: 72},
		Captcha:    config.CaptchaConfig{ExpireMinutes: 10, Length: 5},
		Redis:      config.RedisConfig{MailStream: "test:mail"},
		Uploads:    config.UploadsConfig{Dir: t.TempDir(), MaxSizeMB: 1},
		CORS:       config.CORSConfig{Origins: []string{"*"}},
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Algorithm, cfg.JWT.GetExpireDuration())
	tokens := utils.NewActivationTokenGenerator(cfg.Activation.SecretKey, cfg.Activation.GetExpireDuration())

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	r := SetupRouter(cfg, jwtManager, tokens, log, db, rdb)
	return &testEnv{router: r, db: db, rdb: rdb, jwt: jwtManager, cfg: cfg}
}

// seedActiveUser 直接写库创建激活用户并签发会话Token
func (e *testEnv) seedActiveUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("Xy9abcdef")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{
		Email:        email,
		Name:         "用户",
		Age:          20,
		Image:        "default.jpg",
		PasswordHash: hash,
		IsActive:     true,
		DateJoined:   time.Now(),
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := e.jwt.GenerateToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpointEnqueuesOneMailJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 预置验证码答案
	if err := env.rdb.Set(ctx, "newsgo:captcha:cap1", "12345", time.Minute).Err(); err != nil {
		t.Fatalf("seed captcha: %v", err)
	}

	w := env.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"name":           "A",
		"email":          "a@b.com",
		"password1":      "Xy9abcdef",
		"password2":      "Xy9abcdef",
		"captcha_id":     "cap1",
		"captcha_answer": "12345",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
	var user models.User
	env.db.First(&user)
	if user.IsActive {
		t.Fatal("registered user must be inactive")
	}

	length, err := env.rdb.XLen(ctx, "test:mail").Result()
	if err != nil {
		t.Fatalf("xlen: %v", err)
	}
	if length != 1 {
		t.Fatalf("expected exactly 1 mail job, got %d", length)
	}
}

func TestRegisterEndpointRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)
	if err := env.rdb.Set(context.Background(), "newsgo:captcha:cap1", "12345", time.Minute).Err(); err != nil {
		t.Fatalf("seed captcha: %v", err)
	}

	w := env.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"name":           "A",
		"email":          "a@b.com",
		"password1":      "short1",
		"password2":      "short1",
		"captcha_id":     "cap1",
		"captcha_answer": "12345",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("no user must be created, got %d", count)
	}
}

func TestActivationLinkEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.rdb.Set(ctx, "newsgo:captcha:cap1", "12345", time.Minute).Err(); err != nil {
		t.Fatalf("seed captcha: %v", err)
	}
	w := env.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"name":           "A",
		"email":          "a@b.com",
		"password1":      "Xy9abcdef",
		"password2":      "Xy9abcdef",
		"captcha_id":     "cap1",
		"captcha_answer": "12345",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}

	var user models.User
	env.db.First(&user)

	tokens := utils.NewActivationTokenGenerator("test-secret", 72*time.Hour)
	uid := utils.EncodeUID(user.ID)
	token := tokens.MakeToken(&user)

	w = env.do(t, http.MethodGet, "/api/activate/"+uid+"/"+token, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate: %d %s", w.Code, w.Body.String())
	}

	env.db.First(&user)
	if !user.IsActive {
		t.Fatal("user must be active after visiting the link")
	}

	// 同一链接第二次访问必须失败
	w = env.do(t, http.MethodGet, "/api/activate/"+uid+"/"+token, "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second visit: expected 400, got %d", w.Code)
	}
}

// 评论编辑与删除当前仅要求登录态：另一名已登录用户也能
// 修改别人的评论。该行为与原始实现一致，待确认后收紧。
func TestCommentEditDeleteNotRestrictedToAuthor(t *testing.T) {
	env := newTestEnv(t)

	author, authorToken := env.seedActiveUser(t, "author@example.com")
	_, otherToken := env.seedActiveUser(t, "other@example.com")

	news := &models.News{Title: "标题", Text: "正文", Image: "n.jpg", PostedAt: time.Now()}
	if err := env.db.Create(news).Error; err != nil {
		t.Fatalf("seed news: %v", err)
	}

	// 作者发表评论
	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/news/%d/comments", news.ID), authorToken,
		map[string]string{"text": "我的评论"})
	if w.Code != http.StatusOK {
		t.Fatalf("create comment: %d %s", w.Code, w.Body.String())
	}

	var comment models.Comment
	env.db.First(&comment)
	if comment.AuthorID != author.ID {
		t.Fatalf("comment author = %d, want %d", comment.AuthorID, author.ID)
	}

	// 未登录不可编辑
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/comments/%d", comment.ID), "",
		map[string]string{"text": "改"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous edit: expected 401, got %d", w.Code)
	}

	// 其他已登录用户可以编辑与删除
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/comments/%d", comment.ID), otherToken,
		map[string]string{"text": "别人改的"})
	if w.Code != http.StatusOK {
		t.Fatalf("other user edit: %d %s", w.Code, w.Body.String())
	}
	env.db.First(&comment)
	if comment.Text != "别人改的" {
		t.Fatalf("comment text = %q", comment.Text)
	}

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), otherToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("other user delete: %d %s", w.Code, w.Body.String())
	}
	var count int64
	env.db.Model(&models.Comment{}).Count(&count)
	if count != 0 {
		t.Fatalf("comment must be deleted, %d left", count)
	}
}

func TestLoginEndpointMessages(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.seedActiveUser(t, "a@b.com")

	// 正常登录
	w := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "a@b.com", "password": "Xy9abcdef",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}

	// 未激活账号：专门的提示
	env.db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false)
	w = env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "a@b.com", "password": "Xy9abcdef",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("inactive login: expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "账号未激活") {
		t.Fatalf("expected inactive message, got %s", w.Body.String())
	}

	// 错误密码：笼统提示
	w = env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "a@b.com", "password": "wrongpass1",
	})
	if !strings.Contains(w.Body.String(), "邮箱或密码错误") {
		t.Fatalf("expected generic message, got %s", w.Body.String())
	}
}

func TestAdminRoutesRequireStaff(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.seedActiveUser(t, "plain@example.com")

	staff := &models.User{
		Email:        "staff@example.com",
		Name:         "员工",
		Age:          30,
		PasswordHash: "hash",
		IsStaff:      true,
		IsActive:     true,
		DateJoined:   time.Now(),
	}
	if err := env.db.Create(staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	staffToken, err := env.jwt.GenerateToken(staff.ID, staff.Email, true)
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	w := env.do(t, http.MethodPost, "/api/admin/categories", userToken, map[string]string{"name": "科技"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-staff: expected 403, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/admin/categories", staffToken, map[string]string{"name": "科技"})
	if w.Code != http.StatusOK {
		t.Fatalf("staff create category: %d %s", w.Code, w.Body.String())
	}

	var count int64
	env.db.Model(&models.Category{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 category, got %d", count)
	}
}

func TestNewsListFilterFallbackOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	category := &models.Category{Name: "科技"}
	if err := env.db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	for _, n := range []*models.News{
		{Title: "一", Text: "正文", Image: "a.jpg", CategoryID: &category.ID, PostedAt: time.Now()},
		{Title: "二", Text: "正文", Image: "b.jpg", PostedAt: time.Now()},
	} {
		if err := env.db.Create(n).Error; err != nil {
			t.Fatalf("seed news: %v", err)
		}
	}

	w := env.do(t, http.MethodGet, "/api/news?category_id=9999", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}

	var resp struct {
		Data struct {
			News []struct {
				Title string `json:"title"`
			} `json:"news"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data.News) != 2 {
		t.Fatalf("expected full list of 2, got %d", len(resp.Data.News))
	}
}
