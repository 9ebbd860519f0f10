package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/geovibes/geovibes/internal/domain"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AccountUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, bool)
}

type Users interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, bool)
	Append(ctx context.Context, user domain.User) error
}

type Sessions interface {
	Current() (*domain.User, bool)
	Set(ctx context.Context, user domain.User) error
	Clear(ctx context.Context) error
}

type AccountService struct {
	users    Users
	sessions Sessions
	now      func() time.Time
}

func NewAccountService(users Users, sessions Sessions) *AccountService {
	return &AccountService{users: users, sessions: sessions, now: time.Now}
}

// RegisterInput carries the registration form: email and password are
// required, everything else lands in Extra.
type RegisterInput struct {
	Email    string
	Password string
	Extra    map[string]string
}

func (in *RegisterInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["email"]; ok {
		if err := json.Unmarshal(v, &in.Email); err != nil {
			return fmt.Errorf("email: %w", err)
		}
		delete(raw, "email")
	}
	if v, ok := raw["password"]; ok {
		if err := json.Unmarshal(v, &in.Password); err != nil {
			return fmt.Errorf("password: %w", err)
		}
		delete(raw, "password")
	}
	in.Extra = domain.DecodeExtra(raw)
	return nil
}

// Register creates a new account and signs it in. The email must not be used
// by an existing user; the match is exact.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	if _, exists := s.users.FindByEmail(ctx, input.Email); exists {
		return nil, ErrEmailTaken
	}

	now := s.now()
	user := domain.User{
		ID:        domain.NewID(now),
		Email:     input.Email,
		Password:  input.Password,
		CreatedAt: domain.ISOTime(now),
		Extra:     input.Extra,
	}

	if err := s.users.Append(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login signs in the user whose email and password match exactly. The session
// is untouched on failure.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, ok := s.users.FindByEmail(ctx, email)
	if !ok || user.Password != password {
		return nil, ErrInvalidCredentials
	}
	if err := s.sessions.Set(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the session in memory and in the store.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *AccountService) CurrentUser(ctx context.Context) (*domain.User, bool) {
	return s.sessions.Current()
}

var _ AccountUseCase = (*AccountService)(nil)
