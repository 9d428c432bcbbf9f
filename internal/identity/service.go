package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/askbook/askbook-api/internal/config"
	"github.com/askbook/askbook-api/internal/models"
	"github.com/askbook/askbook-api/internal/tokens"
	"github.com/askbook/askbook-api/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Service is the identity provider: account creation, lookup and custom-token issuance.
type Service struct {
	dir Directory
	cfg *config.Config
	now func() time.Time
}

func NewService(dir Directory, cfg *config.Config) *Service {
	return &Service{dir: dir, cfg: cfg, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new email/password account and returns its record.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	uid := strings.ReplaceAll(uuid.NewString(), "-", "")
	u := &models.User{
		UID:          uid,
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     models.UserMetadata{CreationTime: s.now().UTC()},
		ProviderData: []models.UserProvider{{UID: email, Email: email, ProviderID: models.PasswordProviderID}},
	}
	if err := s.dir.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login looks up the account by email and mints a custom token for it.
// The password is only compared when IDENTITY_VERIFY_PASSWORD is enabled.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", ErrInvalidEmail
	}
	u, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if s.cfg.Identity.VerifyPassword {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return "", ErrInvalidPassword
			}
			return "", err
		}
	}
	token, err := tokens.GenerateCustomToken(s.cfg, u.UID, s.cfg.Identity.TokenTTL)
	if err != nil {
		return "", err
	}
	if err := s.dir.TouchSignIn(ctx, email, s.now().UTC()); err != nil {
		logger.Warnf("identity: failed to record sign-in for uid=%s: %v", u.UID, err)
	}
	return token, nil
}

// GetUserByEmail returns the account record or ErrUserNotFound.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.dir.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
