// internal/pkg/auth/password.go
package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/pkg/errors"
	"github.com/your-org/collectibles-storefront/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed admin login
var ErrInvalidCredentials = errors.New("invalid email or password")

// HashPassword hashes a password using bcrypt
func HashPassword(password string, cost int) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password must be at least 8 characters long")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against its hash
func VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// AdminAuthenticator checks the configured admin account and issues tokens
type AdminAuthenticator struct {
	config *config.Config
	jwt    *JWTManager
}

// NewAdminAuthenticator creates an authenticator for the configured admin
func NewAdminAuthenticator(cfg *config.Config) *AdminAuthenticator {
	return &AdminAuthenticator{
		config: cfg,
		jwt:    NewJWTManager(cfg),
	}
}

// Login returns an admin access token for valid credentials
func (a *AdminAuthenticator) Login(email, password string) (string, error) {
	if a.config.Admin.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}

	emailMatch := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(a.config.Admin.Email)),
	) == 1
	passwordErr := VerifyPassword(password, a.config.Admin.PasswordHash)
	if !emailMatch || passwordErr != nil {
		return "", ErrInvalidCredentials
	}

	return a.jwt.GenerateAccessToken(a.config.Admin.Email, true)
}
