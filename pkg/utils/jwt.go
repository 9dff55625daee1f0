package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessToken is a signed HS256 JWT plus its expiry, returned at login.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// Claims are the decoded fields the middleware needs: who the caller is
// and what they may do.
type Claims struct {
	UserID uuid.UUID
	Role   string
}

// NewAccessToken signs an HS256 JWT for a user with sub, role, exp and iat
// claims.
func NewAccessToken(secret string, userID uuid.UUID, role string, expiryHours int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(expiryHours) * time.Hour)

	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}

	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a bearer token and
// returns the embedded claims.
func ParseAccessToken(secret, token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("parse access token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, fmt.Errorf("invalid access token")
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid subject claim: %w", err)
	}

	role, _ := mapClaims["role"].(string)

	return Claims{UserID: userID, Role: role}, nil
}
