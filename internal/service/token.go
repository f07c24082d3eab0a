package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// TokenCodec issues and validates HS256-signed bearer tokens carrying the
// username as subject. The secret is fixed for the process lifetime.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for username with iat=now, exp=now+ttl.
func (tc *TokenCodec) Issue(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
	})
	return token.SignedString(tc.secret)
}

// Validate reports whether the token's signature matches the secret and it
// has not expired. Malformed input, bad signatures and expiry all collapse
// to false; callers treat false as "anonymous".
func (tc *TokenCodec) Validate(raw string) bool {
	token, err := jwt.Parse(raw, tc.keyFunc)
	return err == nil && token.Valid
}

// ExtractSubject reads the subject claim without verifying the signature.
// Callers must Validate first; an unvalidated subject is untrusted.
func (tc *TokenCodec) ExtractSubject(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (tc *TokenCodec) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return tc.secret, nil
}
