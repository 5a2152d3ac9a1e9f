package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/visa-booking-service/internal/domain"
	adminRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/admin"
)

// Token выданный токен доступа администратора
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Profile данные текущего администратора, без хэша пароля
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	repo   AdminRepository
	secret []byte
	ttl    time.Duration
	clock  Clock
	logger Logger
}

// NewService создает сервис аутентификации; токены подписываются HS256 секретом
func NewService(repo AdminRepository, secret string, ttl time.Duration, logger Logger) *Service {
	return &Service{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		clock:  realClock{},
		logger: logger,
	}
}

// WithClock подменяет источник времени
func (s *Service) WithClock(clock Clock) *Service {
	s.clock = clock
	return s
}

// Login проверяет пароль и выдает токен; неизвестный email и неверный пароль неразличимы
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Login: unknown admin email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to get admin: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login: wrong password for %s", user.Email)
		return nil, ErrInvalidCredentials
	}

	token, err := s.issue(user.ID)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Admin signed in: id=%s", user.ID)
	return token, nil
}

// Me возвращает профиль администратора, id которого извлечен из токена
func (s *Service) Me(ctx context.Context, adminID uuid.UUID) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Me: admin %s from a valid token no longer exists", adminID)
			return nil, ErrAdminNotFound
		}
		s.logger.Error("Me: failed to get admin %s: %v", adminID, err)
		return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
	}

	return &Profile{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}, nil
}

func (s *Service) issue(adminID uuid.UUID) (*Token, error) {
	now := s.clock.Now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   adminID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// ParseToken проверяет подпись и срок действия, возвращает id администратора
func (s *Service) ParseToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// срок проверяется по часам сервиса, а не по time.Now
	now := s.clock.Now()
	if !claims.VerifyExpiresAt(now, true) || !claims.VerifyNotBefore(now, false) {
		return uuid.Nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}

	adminID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return adminID, nil
}

// EnsureAdmin создает администратора при первом запуске; существующий не меняется
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, adminRepo.ErrAdminNotFound) {
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - hash password: %v", ErrInternal, err)
	}

	user := &domain.AdminUser{ID: uuid.New(), Email: email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Bootstrap admin created: email=%s", email)
	return nil
}
