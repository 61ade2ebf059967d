package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/TWRT/todo-client/internal/client"
	"github.com/TWRT/todo-client/internal/models"
	"github.com/TWRT/todo-client/internal/repository"
	"github.com/TWRT/todo-client/internal/session"
)

const (
	SignInPath    = "/auth/sign-in"
	DashboardPath = "/dashboard"

	minPasswordLength = 8
)

var (
	ErrInvalidEmail     = errors.New("Please enter a valid email address")
	ErrPasswordRequired = errors.New("Password is required")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("Passwords do not match")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SignUpForm struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

type SessionInfo struct {
	Authenticated bool       `json:"authenticated"`
	UserName      string     `json:"userName,omitempty"`
	UserId        string     `json:"userId,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	ExpiresIn     string     `json:"expiresIn,omitempty"`
	ExpiringSoon  bool       `json:"expiringSoon"`
}

type AuthService struct {
	authClient client.AuthClient
	evaluator  *session.Evaluator
	redirects  *repository.RedirectRepository
}

func NewAuthService(
	authClient client.AuthClient,
	evaluator *session.Evaluator,
	redirects *repository.RedirectRepository,
) *AuthService {
	return &AuthService{
		authClient: authClient,
		evaluator:  evaluator,
		redirects:  redirects,
	}
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	return s.authClient.SignIn(ctx, email, password)
}

func (s *AuthService) SignUp(ctx context.Context, form SignUpForm) (*models.AuthResult, error) {
	email := strings.TrimSpace(form.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(form.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if form.Password != form.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	return s.authClient.SignUp(ctx, email, form.Password, strings.TrimSpace(form.Name))
}

func (s *AuthService) SignOut(ctx context.Context) error {
	return s.authClient.SignOut(ctx)
}

func (s *AuthService) IsAuthenticated() bool {
	return s.evaluator.IsAuthenticated()
}

// RequireAuth reports whether the caller may view path. When it may not,
// non-root paths are remembered for RedirectAfterLogin.
func (s *AuthService) RequireAuth(path string) (bool, error) {
	if s.evaluator.IsAuthenticated() {
		return true, nil
	}
	if path != "" && path != "/" {
		if err := s.redirects.Save(path); err != nil {
			return false, err
		}
	}
	return false, nil
}

// RedirectAfterLogin returns the remembered path once, then the dashboard.
func (s *AuthService) RedirectAfterLogin() (string, error) {
	path, ok, err := s.redirects.Pop()
	if err != nil {
		return "", err
	}
	if !ok {
		return DashboardPath, nil
	}
	return path, nil
}

func (s *AuthService) Session() (SessionInfo, error) {
	if !s.evaluator.IsAuthenticated() {
		return SessionInfo{}, nil
	}

	info := SessionInfo{
		Authenticated: true,
		ExpiringSoon:  s.evaluator.ExpiringSoon(session.DefaultExpiryWarning),
	}

	name, _, err := s.evaluator.Store().UserName()
	if err != nil {
		return SessionInfo{}, err
	}
	info.UserName = name

	if id, ok := s.evaluator.UserID(); ok {
		info.UserId = id
	}

	if left, ok := s.evaluator.ExpiresIn(); ok {
		now := s.evaluator.Now()
		exp := now.Add(left)
		info.ExpiresAt = &exp
		info.ExpiresIn = humanize.RelTime(exp, now, "ago", "from now")
	}

	return info, nil
}
