package auth

import (
	"context"
	"testing"
	"time"

	"github.com/pverissimo/loja-admin-api/internal/users"
	pkgAuth "github.com/pverissimo/loja-admin-api/pkg/auth"
	"github.com/pverissimo/loja-admin-api/pkg/auth/session"
	"github.com/pverissimo/loja-admin-api/pkg/config"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/pverissimo/loja-admin-api/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "loja",
		ExpirationMinutes: 30,
	}
}

func TestServiceLoginIssuesTokens(t *testing.T) {
	password := "correct-horse"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: mustHashPassword(t, password),
		Name:         "Owner",
	}
	cfg := testJWTConfig()

	svc, sessions := buildTestService(t, user, cfg)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user claim %s, got %s", user.ID, claims.UserID)
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected refresh token to be set")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("unexpected user payload %+v", resp.User)
	}
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: mustHashPassword(t, "right"),
	}

	svc, _ := buildTestService(t, user, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginUnknownUserIsUnauthorized(t *testing.T) {
	svc, _ := buildTestService(t, nil, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := &stubUserRepo{createErr: errDuplicate{}}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name:     "Dup",
		Email:    "dup@example.com",
		Password: "longenough",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	cfg := testJWTConfig()
	user := &models.User{ID: uuid.New(), Email: "owner@example.com"}
	sessions := &stubSessionManager{rotatedAccessID: session.NewAccessID(), rotatedRefresh: "new-refresh"}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      cfg,
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{UserID: user.ID, JTI: accessID})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{AccessToken: token, RefreshToken: "old-refresh"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.RefreshToken != "new-refresh" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
	if sessions.rotatedFrom != accessID {
		t.Fatalf("expected rotation from %s, got %s", accessID, sessions.rotatedFrom)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("rotated token lost user claim")
	}
}

func TestServiceRefreshInvalidTokenUnauthorized(t *testing.T) {
	cfg := testJWTConfig()
	sessions := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: sessions,
		JWTConfig:      cfg,
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{UserID: uuid.New(), JTI: session.NewAccessID()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{AccessToken: token, RefreshToken: "stale"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("expected revoke of access-1, got %v", sessions.revoked)
	}
}

func buildTestService(t *testing.T, user *models.User, cfg config.JWTConfig) (Service, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      cfg,
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    16 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

type stubUserRepo struct {
	user      *models.User
	createErr error
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	u := dto.ToModel()
	u.ID = uuid.New()
	return u, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessionManager struct {
	generated       []string
	revoked         []string
	rotatedFrom     string
	rotatedAccessID string
	rotatedRefresh  string
	rotateErr       error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotatedFrom = oldAccessID
	return s.rotatedAccessID, s.rotatedRefresh, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

type errDuplicate struct{}

func (errDuplicate) Error() string {
	return `duplicate key value violates unique constraint "idx_users_email"`
}
