package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"uwaveapi/internal/auth"
	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

const minPasswordLength = 6

// RegisterInput is the body of a registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Session is a freshly issued login.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// AuthService registers users, logs them in and resolves session tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)

	// Authenticate returns the user a token belongs to. Failures are ErrBadRequest
	// except for banned users, which are ErrForbidden.
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens *auth.Tokens, log zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log.With().Str("component", "auth").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case username == "":
		return nil, invalid("username is not set")
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return nil, invalid("username can't be longer than %d characters", maxUsernameLength)
	case email == "":
		return nil, invalid("email is not set")
	case len(in.Password) < minPasswordLength:
		return nil, invalid("password has to be at least %d characters", minPasswordLength)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email is not valid")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u, err := s.users.Create(ctx, &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Slug:         strings.ToLower(username),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, conflict("username or email is already in use")
	}
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", u.ID).Msg("user registered")
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, unauthorized("invalid email or password")
	}
	if u.IsBanned(s.now()) {
		return nil, forbidden("You have been banned")
	}

	token, expires, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expires, User: u}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	switch {
	case errors.Is(err, auth.ErrEmptyToken):
		return nil, badRequest("Empty token")
	case err != nil:
		return nil, badRequest("Invalid token")
	}

	if !validID(claims.UserID) {
		return nil, badRequest("User not found")
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, badRequest("User not found")
	}
	if err != nil {
		return nil, err
	}
	if u.IsBanned(s.now()) {
		return nil, forbidden("You have been banned")
	}
	return u, nil
}
