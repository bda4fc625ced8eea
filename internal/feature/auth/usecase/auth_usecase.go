package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"recipe_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum number of characters for a password.
	minPasswordLength = 8

	// maxActiveSessions caps the number of concurrent sessions per user.
	// The oldest session is evicted when the cap is reached.
	maxActiveSessions = 5
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists if a user with the same email exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error
}

// JWTGenerator defines the interface for access token generation.
type JWTGenerator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// AuthUsecase implements registration, login and profile management.
type AuthUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
	sessionTTL   time.Duration
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, gen JWTGenerator, sessionTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: gen,
		sessionTTL:   sessionTTL,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// normalizeEmail lower-cases the domain part of the address.
// The local part is left untouched; only the domain is case-insensitive.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// newSessionID generates a cryptographically random 64-character hex token.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Register creates a new active user with a hashed password.
func (u *AuthUsecase) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Email:    normalizeEmail(email),
		Password: string(hashed),
		Name:     name,
		Active:   true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a signed access token plus the
// opaque refresh token persisted as a session. A bcrypt comparison runs even
// when the user does not exist so the response time does not reveal whether
// the email is registered.
func (u *AuthUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	// Dummy hash so bcrypt.CompareHashAndPassword always executes.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil || !user.Active {
		return "", "", ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, userAgent, ipAddress)
}

// Refresh rotates a refresh token: the presented session is revoked and a
// new session plus access token are issued.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (string, string, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return "", "", ErrSessionNotFound
	}
	if session.IsRevoked() {
		return "", "", ErrSessionRevoked
	}
	if session.IsExpired() {
		return "", "", ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return "", "", ErrUserNotFound
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return "", "", fmt.Errorf("failed to revoke session: %w", err)
	}

	return u.issueTokens(ctx, user, userAgent, ipAddress)
}

// Logout revokes the presented refresh token.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return u.sessions.Revoke(ctx, refreshToken)
}

// Profile returns the user identified by id.
func (u *AuthUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile updates the user's name and/or password. Nil means "leave
// unchanged". A new password is validated and rehashed; it is never stored
// in plaintext.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uint, name, password *string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		if err := validatePassword(*password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// issueTokens creates a session for the user and signs an access token.
func (u *AuthUsecase) issueTokens(ctx context.Context, user *entity.User, userAgent, ipAddress string) (string, string, error) {
	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err == nil && count >= maxActiveSessions {
		// Best effort: a failed eviction must not block login.
		_ = u.sessions.DeleteOldestByUserID(ctx, user.ID)
	}

	id, err := newSessionID()
	if err != nil {
		return "", "", err
	}
	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", "", fmt.Errorf("failed to create session: %w", err)
	}

	access, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	return access, session.ID, nil
}
