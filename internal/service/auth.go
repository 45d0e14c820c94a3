package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/storefront/internal/domain"
	"github.com/msomdec/storefront/internal/validate"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Reasons shown to the user when a login attempt is rejected.
const (
	ReasonUnknownEmail  = "Email is not valid."
	ReasonWrongPassword = "Password is not valid."
)

type registration struct {
	FirstName       string `label:"First name" validate:"required"`
	LastName        string `label:"Last name" validate:"required"`
	Email           string `label:"Email" validate:"required,email"`
	Password        string `label:"Password" validate:"required"`
	ConfirmPassword string `label:"Password confirmation" validate:"eqfield=Password"`
}

type credentials struct {
	Email string `label:"Email" validate:"required,email"`
}

// AuthService handles registration, login and the stored sessions behind
// each issued token.
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	jwtSecret  []byte
	bcryptCost int
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, jwtSecret string, bcryptCost int, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new user account. Every failing input rule is reported
// in a single *domain.ValidationError.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password, confirmPassword string) (*domain.User, error) {
	in := registration{
		FirstName:       strings.TrimSpace(firstName),
		LastName:        strings.TrimSpace(lastName),
		Email:           normalizeEmail(email),
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	if err := validate.Check(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// Login verifies credentials and opens a new session, returning its signed
// token. Rejections are *domain.AuthError values.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if err := validate.Check(credentials{Email: email}); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) && len(verr.Messages) > 0 {
			return "", &domain.AuthError{Reason: verr.Messages[0]}
		}
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", &domain.AuthError{Reason: ReasonUnknownEmail}
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", &domain.AuthError{Reason: ReasonWrongPassword}
	}

	return s.StartSession(ctx, user)
}

// StartSession stores a new session for user and returns a token naming it.
func (s *AuthService) StartSession(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := s.generateJWT(session)
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}
	return token, nil
}

// ValidateToken checks the token signature and that the session it names is
// still live. Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (int64, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	session, err := s.sessions.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrUnauthorized
		}
		return 0, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != userID || !time.Now().Before(session.ExpiresAt) {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// Logout ends the session named by the token. Unparseable or already ended
// tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, time.Now())
}

// SessionLifetime is how long a new session stays valid.
func (s *AuthService) SessionLifetime() time.Duration {
	return s.sessionTTL
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) parse(tokenString string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) generateJWT(session *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   strconv.FormatInt(session.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
