package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-edu-portal/cmd/api/auth"
	"ai-edu-portal/cmd/internal/logger"
	"ai-edu-portal/mailer"
	"ai-edu-portal/models"
	"ai-edu-portal/repositories"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenTTL = time.Hour

// AuthService 는 credentials 가입/로그인, Google OAuth 로그인,
// 비밀번호 재설정 플로우를 담당한다.
type AuthService struct {
	users       *repositories.UserRepository
	resets      *repositories.PasswordResetRepository
	googleOAuth *auth.GoogleOAuthClient
	jwtManager  *auth.JWTManager
	mail        *mailer.Mailer

	redirectURL  string
	resetBaseURL string
}

func NewAuthService(
	users *repositories.UserRepository,
	resets *repositories.PasswordResetRepository,
	googleOAuth *auth.GoogleOAuthClient,
	jwtManager *auth.JWTManager,
	mail *mailer.Mailer,
	redirectURL string,
	resetBaseURL string,
) *AuthService {
	return &AuthService{
		users:        users,
		resets:       resets,
		googleOAuth:  googleOAuth,
		jwtManager:   jwtManager,
		mail:         mail,
		redirectURL:  redirectURL,
		resetBaseURL: resetBaseURL,
	}
}

func NewAuthServiceFromEnv(users *repositories.UserRepository, resets *repositories.PasswordResetRepository, mail *mailer.Mailer) (*AuthService, error) {
	googleClient, err := auth.NewGoogleOAuthClientFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init GoogleOAuthClient: %w", err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init JWTManager: %w", err)
	}

	redirectURL := os.Getenv("AUTH_LOGIN_SUCCESS_REDIRECT_URL")
	if redirectURL == "" {
		return nil, fmt.Errorf("AUTH_LOGIN_SUCCESS_REDIRECT_URL is blank")
	}

	resetBaseURL := os.Getenv("PASSWORD_RESET_BASE_URL")
	if resetBaseURL == "" {
		return nil, fmt.Errorf("PASSWORD_RESET_BASE_URL is blank")
	}

	return NewAuthService(users, resets, googleClient, jwtManager, mail, redirectURL, resetBaseURL), nil
}

// Register 는 credentials 계정을 생성하고 액세스 토큰을 발급한다.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Provider:     models.ProviderCredentials,
		Role:         models.RoleUser,
	}
	res, err := s.users.Insert(ctx, u)
	if err != nil {
		return nil, "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}

	token, err := s.jwtManager.Sign(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login 은 이메일/비밀번호를 검증하고 액세스 토큰을 발급한다.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if u.PasswordHash == "" || !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.Sign(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) BuildGoogleLoginURL(state string) string {
	return s.googleOAuth.AuthCodeURL(state)
}

// HandleGoogleCallback 은 OAuth 콜백 코드를 교환하고 유저를 upsert 한 뒤
// 액세스 토큰을 발급한다.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (string, error) {
	token, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("google oauth exchange: %w", err)
	}

	info, err := s.googleOAuth.FetchUserInfo(ctx, token)
	if err != nil {
		return "", fmt.Errorf("google userinfo: %w", err)
	}

	saved, err := s.users.UpsertByProvider(ctx, &models.User{
		Provider:    models.ProviderGoogle,
		ProviderSub: info.Sub,
		Email:       info.Email,
		Name:        info.Name,
		Image:       info.Picture,
	})
	if err != nil {
		return "", fmt.Errorf("user upsert: %w", err)
	}

	accessToken, err := s.jwtManager.Sign(saved.ID.Hex(), saved.Role)
	if err != nil {
		return "", fmt.Errorf("jwt sign: %w", err)
	}
	return accessToken, nil
}

// GetRedirectURL 는 Google OAuth 플로우 최종 리다이렉트 대상 URL을 반환한다.
// 성공 시에는 GetRedirectURLWithToken 으로 토큰을 붙여 사용하고,
// 실패 시에는 이 URL로 토큰 없이 리다이렉트한다.
func (s *AuthService) GetRedirectURL() string {
	return s.redirectURL
}

func (s *AuthService) GetRedirectURLWithToken(token string) string {
	return fmt.Sprintf("%s?token=%s", s.redirectURL, token)
}

func (s *AuthService) ParseAccessToken(token string) (string, string, error) {
	return s.jwtManager.Parse(token)
}

// GetUser 는 토큰 sub 클레임의 hex ID 로 유저를 조회한다.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ForgotPassword 는 재설정 토큰을 만들어 메일로 발송한다.
// 존재하지 않는 이메일이어도 에러를 노출하지 않는다(계정 존재 여부 노출 방지).
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	reset := &models.PasswordReset{
		Email:     u.Email,
		Token:     token,
		UserID:    u.ID.Hex(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if _, err := s.resets.Insert(ctx, reset); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s?token=%s", s.resetBaseURL, token)
	if err := s.mail.SendPasswordReset(u.Email, resetURL); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			// 개발 환경: SMTP 미설정 시 링크를 로그로만 남긴다.
			logger.InfoWithFields("smtp not configured, logging reset link", logger.Fields{
				"email":     u.Email,
				"reset_url": resetURL,
			})
			return nil
		}
		return err
	}
	return nil
}

// ResetPassword 는 유효한 토큰을 소모하고 새 비밀번호를 저장한다.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.resets.FindValidByToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidResetToken
		}
		return err
	}

	oid, err := primitive.ObjectIDFromHex(reset.UserID)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, oid, hash); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, reset.ID)
}
