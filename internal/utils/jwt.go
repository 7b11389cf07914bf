package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPayload is the claim set embedded in every access token. Admin
// identity travels as {id, email}; iat/exp are standard claims.
type TokenPayload struct {
	AdminID   uint64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

var errInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for an admin. The token
// carries the admin id as subject plus the email, and expires after
// ttlDays days.
func NewAccessToken(secret string, adminID uint64, email string, ttlDays int) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":   adminID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// VerifyToken validates the signature and expiry of a token and returns
// its payload. Any failure (bad signature, wrong algorithm, expired,
// malformed claims) yields a nil payload and an error; callers decide how
// to react.
func VerifyToken(secret, raw string) (*TokenPayload, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, errInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, errInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, errInvalidToken
	}
	p := &TokenPayload{AdminID: uint64(sub), Email: email}
	if iat, ok := claims["iat"].(float64); ok {
		p.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := claims["exp"].(float64); ok {
		p.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return p, nil
}
