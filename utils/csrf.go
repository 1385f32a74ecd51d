package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const csrfSubject = "csrf"

// ErrInvalidCSRF is returned for missing, expired or forged form tokens.
var ErrInvalidCSRF = errors.New("invalid csrf token")

// CSRF signs and checks the tokens embedded in rendered forms.
type CSRF struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCSRF(secret string, ttl time.Duration) *CSRF {
	return &CSRF{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate returns a fresh token.
func (c *CSRF) Generate() (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   csrfSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	})

	return token.SignedString(c.secret)
}

// Validate checks that tokenString was produced by Generate and has not
// expired.
func (c *CSRF) Validate(tokenString string) error {
	if tokenString == "" {
		return ErrInvalidCSRF
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(csrfSubject),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return ErrInvalidCSRF
	}

	return nil
}
