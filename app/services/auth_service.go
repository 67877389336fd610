package services

import (
	"errors"

	"github.com/shashiranjanraj/vitrine/config"
	"github.com/shashiranjanraj/vitrine/pkg/auth"
)

// ErrInvalidCredentials is returned for any login failure; callers must
// not distinguish unknown email from wrong password.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// AuthService issues JWTs for the reports area. The storefront has a
// single superadmin account configured through the environment; shopper
// flows stay anonymous and session-based.
type AuthService struct{}

func NewAuthService() *AuthService { return &AuthService{} }

// Login checks the credentials against the configured superadmin and
// returns a signed token on success.
func (s *AuthService) Login(email, password string) (string, error) {
	confEmail := config.SuperadminEmail()
	confHash := config.SuperadminPasswordHash()
	if confEmail == "" || confHash == "" {
		return "", ErrInvalidCredentials
	}
	if email != confEmail {
		return "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(confHash, password) {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateToken(email, "superadmin")
}
