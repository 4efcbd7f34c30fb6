package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "CafeOrdering"

var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims -> token meja, mengikat satu kunjungan ke satu order
type SessionClaims struct {
	Order string `json:"order"`
	Cafe  string `json:"cafe"`
	jwt.RegisteredClaims
}

// AdminClaims -> token dashboard admin
type AdminClaims struct {
	Admin string `json:"user"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret     []byte
	sessionTTL time.Duration
	adminTTL   time.Duration
	blacklist  *Blacklist
}

func NewTokens(secret string, sessionTTL, adminTTL time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		adminTTL:   adminTTL,
		blacklist:  NewBlacklist(),
	}
}

// SessionTTL -> umur token sesi, dipakai juga untuk max-age cookie
func (t *Tokens) SessionTTL() time.Duration {
	return t.sessionTTL
}

func (t *Tokens) GenerateSessionToken(orderID, cafeID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Order: orderID,
		Cafe:  cafeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := t.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Order == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t *Tokens) GenerateAdminToken(adminID string) (string, error) {
	now := time.Now()
	claims := &AdminClaims{
		Admin: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.adminTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) ParseAdminToken(tokenString string) (*AdminClaims, error) {
	if t.blacklist.Contains(tokenString) {
		return nil, ErrInvalidToken
	}
	claims := &AdminClaims{}
	if err := t.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Admin == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RevokeAdminToken -> logout, token masuk blacklist sampai kadaluarsa
func (t *Tokens) RevokeAdminToken(tokenString string) {
	expiry := time.Now().Add(t.adminTTL)
	if claims, err := t.ParseAdminToken(tokenString); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	t.blacklist.Add(tokenString, expiry)
}

func (t *Tokens) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
