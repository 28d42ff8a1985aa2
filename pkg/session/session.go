package session

import (
	"fmt"
	"time"

	"stemlearn/internal/config"

	"github.com/golang-jwt/jwt/v4"
)

// currentUserKey is the fixed keystore key under which the current-user
// credential reference lives.
const currentUserKey = "current_user_id"

const defaultTTL = 30 * 24 * time.Hour

// Provider resolves the current user. The pointer held in the keystore is a
// signed token rather than a raw user id, so a tampered keystore entry reads
// as signed-out instead of as another user.
type Provider struct {
	store  Keystore
	secret []byte
	ttl    time.Duration
}

func NewProvider(store Keystore, cfg *config.SessionConfig) *Provider {
	secret := cfg.Secret
	if secret == "" {
		secret = "stemlearn-dev-secret"
	}
	ttl := cfg.ExpireTime
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Provider{store: store, secret: []byte(secret), ttl: ttl}
}

// Establish records userID as the current user.
func (p *Provider) Establish(userID string) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return err
	}
	return p.store.Set(currentUserKey, signed)
}

// CurrentUserID returns the signed-in user id, or "" when nobody is signed
// in. An expired or invalid token reads as signed-out, not as an error.
func (p *Provider) CurrentUserID() (string, error) {
	raw, err := p.store.Get(currentUserKey)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", nil
	}
	return claims.Subject, nil
}

// Clear signs the current user out.
func (p *Provider) Clear() error {
	return p.store.Delete(currentUserKey)
}
