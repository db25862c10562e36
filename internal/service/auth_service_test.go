package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"newsgo/internal/config"
	"newsgo/internal/dto"
	"newsgo/internal/models"
	"newsgo/internal/repository"
	"newsgo/internal/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeCaptcha struct {
	valid bool
	calls int
}

func (f *fakeCaptcha) Verify(id, answer string) bool {
	f.calls++
	return f.valid
}

type mockMailProducer struct {
	userIDs []uint
	err     error
}

func (m *mockMailProducer) SubmitActivation(ctx context.Context, userID uint) error {
	if m.err != nil {
		return m.err
	}
	m.userIDs = append(m.userIDs, userID)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Admin: config.AdminConfig{
			Email:    "admin@example.com",
			Name:     "admin",
			Age:      18,
			Password: "Admin12345",
		},
	}
}

func newAuthService(t *testing.T, db *gorm.DB, cap *fakeCaptcha, mail *mockMailProducer) (*AuthService, *repository.UserRepository) {
	t.Helper()
	userRepo := repository.NewUserRepository(db)
	jwtManager := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	tokens := utils.NewActivationTokenGenerator("test-secret", 72*time.Hour)
	return NewAuthService(userRepo, jwtManager, tokens, cap, mail, testConfig()), userRepo
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:          "A",
		Email:         "a@B.com",
		Password1:     "Xy9abcdef",
		Password2:     "Xy9abcdef",
		CaptchaID:     "cap-id",
		CaptchaAnswer: "12345",
	}
}

func TestRegisterCreatesInactiveUserAndEnqueuesMail(t *testing.T) {
	db := newTestDB(t)
	mail := &mockMailProducer{}
	svc, _ := newAuthService(t, db, &fakeCaptcha{valid: true}, mail)

	user, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.IsActive {
		t.Fatal("new user must be inactive")
	}
	// 邮箱域名部分小写规范化
	if user.Email != "a@b.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "Xy9abcdef" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if err := utils.CheckPassword("Xy9abcdef", user.PasswordHash); err != nil {
		t.Fatalf("hash mismatch: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 user, got %d", count)
	}

	if len(mail.userIDs) != 1 || mail.userIDs[0] != user.ID {
		t.Fatalf("expected exactly 1 mail job for user %d, got %v", user.ID, mail.userIDs)
	}
}

func TestRegisterRejectsBadCaptcha(t *testing.T) {
	db := newTestDB(t)
	mail := &mockMailProducer{}
	svc, _ := newAuthService(t, db, &fakeCaptcha{valid: false}, mail)

	if _, err := svc.Register(context.Background(), registerRequest()); err == nil {
		t.Fatal("expected captcha error")
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("no user must be created, got %d", count)
	}
	if len(mail.userIDs) != 0 {
		t.Fatalf("no mail job must be enqueued, got %v", mail.userIDs)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db, &fakeCaptcha{valid: true}, &mockMailProducer{})

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerRequest()); err == nil {
		t.Fatal("duplicate email must be rejected")
	}
}

func TestActivateFlow(t *testing.T) {
	db := newTestDB(t)
	svc, userRepo := newAuthService(t, db, &fakeCaptcha{valid: true}, &mockMailProducer{})

	user, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tokens := utils.NewActivationTokenGenerator("test-secret", 72*time.Hour)
	uid := utils.EncodeUID(user.ID)
	token := tokens.MakeToken(user)

	resp, err := svc.Activate(context.Background(), uid, token)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("activation must establish a session")
	}
	if !resp.User.IsActive {
		t.Fatal("response must reflect active state")
	}

	stored, err := userRepo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !stored.IsActive {
		t.Fatal("is_active must be flipped")
	}
	if stored.LastLogin == nil {
		t.Fatal("last_login must be set")
	}

	// 同一令牌第二次使用必须失败
	if _, err := svc.Activate(context.Background(), uid, token); !errors.Is(err, ErrInvalidActivation) {
		t.Fatalf("second use must fail with ErrInvalidActivation, got %v", err)
	}
}

func TestActivateRejectsTamperedToken(t *testing.T) {
	db := newTestDB(t)
	svc, userRepo := newAuthService(t, db, &fakeCaptcha{valid: true}, &mockMailProducer{})

	user, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	wrongSecret := utils.NewActivationTokenGenerator("other-secret", 72*time.Hour)
	uid := utils.EncodeUID(user.ID)

	cases := map[string]struct {
		uid   string
		token string
	}{
		"forged token":  {uid, wrongSecret.MakeToken(user)},
		"garbage token": {uid, "zzz-0000"},
		"bad uid":       {"%%%", "whatever"},
		"unknown user":  {utils.EncodeUID(9999), wrongSecret.MakeToken(user)},
	}

	for name, tc := range cases {
		if _, err := svc.Activate(context.Background(), tc.uid, tc.token); !errors.Is(err, ErrInvalidActivation) {
			t.Fatalf("%s: expected ErrInvalidActivation, got %v", name, err)
		}
	}

	stored, _ := userRepo.GetByID(user.ID)
	if stored.IsActive {
		t.Fatal("is_active must stay false after failed activations")
	}
}

func TestLoginErrorMessages(t *testing.T) {
	db := newTestDB(t)
	svc, userRepo := newAuthService(t, db, &fakeCaptcha{valid: true}, &mockMailProducer{})

	user, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// 未激活账号用正确密码登录：返回专门的未激活错误
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.com", Password: "Xy9abcdef"})
	if !errors.Is(err, ErrInactiveAccount) {
		t.Fatalf("expected ErrInactiveAccount, got %v", err)
	}

	// 错误密码与未知邮箱：同一条笼统错误
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.com", Password: "wrongpass1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@b.com", Password: "Xy9abcdef"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// 激活后登录成功
	user.IsActive = true
	if err := userRepo.Update(user); err != nil {
		t.Fatalf("update user: %v", err)
	}
	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "a@B.COM", Password: "Xy9abcdef"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("bad login response: %+v", resp)
	}
}

func TestInitAdminCreatesSuperuserOnce(t *testing.T) {
	db := newTestDB(t)
	svc, userRepo := newAuthService(t, db, &fakeCaptcha{valid: true}, &mockMailProducer{})

	if err := svc.InitAdmin(); err != nil {
		t.Fatalf("init admin: %v", err)
	}
	if err := svc.InitAdmin(); err != nil {
		t.Fatalf("second init admin: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 admin, got %d", count)
	}

	admin, err := userRepo.GetByEmail("admin@example.com")
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if !admin.IsStaff || !admin.IsSuperuser || !admin.IsActive {
		t.Fatalf("superuser flags must be forced true: %+v", admin)
	}
}
