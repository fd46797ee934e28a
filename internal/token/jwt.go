package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

const (
	issuer      = "identity-server"
	typeSession = "session"
)

var _ model.TokenManager = (*JWT)(nil)

// Claims represents session token claims. ID carries the session ID.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWT creates a session token codec signing with secretKey.
func NewJWT(secretKey string, now func() time.Time) *JWT {
	if now == nil {
		now = time.Now
	}
	return &JWT{secretKey: []byte(secretKey), now: now}
}

// Issue signs a token naming the session and its user.
func (j *JWT) Issue(session model.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.UserID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		TokenType: typeSession,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// Parse verifies the signature and expiry and returns the session and user IDs.
func (j *JWT) Parse(tokenString string) (string, uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithTimeFunc(j.now),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return "", uuid.Nil, errors.New("session token is invalid")
	}
	if claims.TokenType != typeSession {
		return "", uuid.Nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.ID == "" {
		return "", uuid.Nil, errors.New("session token has no id")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("failed to parse token subject: %w", err)
	}
	return claims.ID, userID, nil
}
