package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingKey   = errors.New("token signing secret not configured")
)

// TokenService issues and validates HS256 access tokens whose subject is the
// user id.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}
	return &TokenService{secret: []byte(secret), lifetime: lifetime, now: time.Now}, nil
}

func (s *TokenService) Issue(userID int) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse returns the user id carried by tokenStr.
func (s *TokenService) Parse(tokenStr string) (int, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
