package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"solidgo/internal/config"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrSecretRequired is returned when the issuer is constructed without a signing secret.
	ErrSecretRequired = errors.New("jwt secret is required")
	// ErrInvalidToken covers expired, malformed, mis-signed, and wrong-type tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload. TokenType distinguishes access from refresh
// tokens so one cannot be used in place of the other.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful authentication.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// TokenIssuer creates and verifies HMAC-signed JWTs.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer from auth config.
func NewTokenIssuer(cfg config.AuthConfig) (*TokenIssuer, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrSecretRequired
	}
	return &TokenIssuer{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.AccessTokenTTLMin) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTokenTTLMin) * time.Minute,
		now:        time.Now,
	}, nil
}

// Issue returns a fresh access/refresh token pair for the given user.
func (i *TokenIssuer) Issue(userID string) (*TokenPair, error) {
	access, accessExp, err := i.sign(userID, TokenTypeAccess, i.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, _, err := i.sign(userID, TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExp,
	}, nil
}

// Refresh validates a refresh token and issues a new pair.
func (i *TokenIssuer) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := i.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return i.Issue(claims.UserID)
}

// Verify parses the token, checks the signature and expiry, and enforces the
// expected token type. All failures map to ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (i *TokenIssuer) sign(userID, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(ttl)
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
