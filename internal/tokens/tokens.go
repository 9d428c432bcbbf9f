package tokens

import (
	"errors"
	"time"

	"github.com/askbook/askbook-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Audience is the identity toolkit endpoint a custom token is exchanged at.
const Audience = "https://identitytoolkit.googleapis.com/google.identity.identitytoolkit.v1.IdentityToolkit"

// ErrNoSigningSecret is returned when the credential file carries no token_secret.
var ErrNoSigningSecret = errors.New("token signing secret is not configured")

// GenerateCustomToken creates a signed custom token bound to uid.
// The token is opaque to this service: it is neither stored nor verified here.
func GenerateCustomToken(cfg *config.Config, uid string, ttl time.Duration) (string, error) {
	if cfg.Credentials.TokenSecret == "" {
		return "", ErrNoSigningSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": cfg.Credentials.ClientEmail,
		"sub": cfg.Credentials.ClientEmail,
		"aud": Audience,
		"uid": uid,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.Credentials.TokenSecret))
}
