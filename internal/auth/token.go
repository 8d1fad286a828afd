package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gr3edydevel0per/N-Layer-API/internal/config"
)

// Codec errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// nonceBytes is the amount of randomness embedded in every token so that two
// tokens minted for the same user within the same second never collide.
const nonceBytes = 16

// Claims is the payload carried by both access and API tokens.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Nonce  string `json:"nonce"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies access tokens and mints API tokens. It holds
// two independent HMAC secrets: the access secret for short-lived tokens and
// the API secret for long-lived ones, so the two token spaces are disjoint.
type TokenCodec struct {
	accessSecret []byte
	apiSecret    []byte
	accessTTL    time.Duration
	apiTTL       time.Duration
}

// NewTokenCodec creates a codec from the configured secrets and expirations.
func NewTokenCodec(cfg *config.Config) *TokenCodec {
	return &TokenCodec{
		accessSecret: []byte(cfg.AccessTokenSecret),
		apiSecret:    []byte(cfg.ApiTokenSecret),
		accessTTL:    time.Duration(cfg.AccessTokenExpiration) * time.Second,
		apiTTL:       time.Duration(cfg.ApiTokenExpiration) * time.Second,
	}
}

// SignAccessToken mints a short-lived access token for the given principal.
// Returns the signed token and its time to live.
func (c *TokenCodec) SignAccessToken(userID, email string) (string, time.Duration, error) {
	token, err := c.sign(userID, email, c.accessSecret, c.accessTTL)
	if err != nil {
		return "", 0, err
	}
	return token, c.accessTTL, nil
}

// VerifyAccessToken checks signature and expiry of an access token and
// returns the embedded claims. The signing method is pinned to HMAC so a
// token signed with a different algorithm is rejected outright.
func (c *TokenCodec) VerifyAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.accessSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueAPIToken mints a long-lived API token for the given principal. The
// plaintext is returned exactly once together with its storage digest; only
// the digest is ever persisted.
func (c *TokenCodec) IssueAPIToken(userID, email string) (plaintext string, storageHash string, err error) {
	plaintext, err = c.sign(userID, email, c.apiSecret, c.apiTTL)
	if err != nil {
		return "", "", err
	}
	return plaintext, HashAPIToken(plaintext), nil
}

// HashAPIToken derives the deterministic one-way storage digest of an API
// token. Deterministic on purpose: verification works by exact digest match,
// not by salted comparison.
func HashAPIToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func (c *TokenCodec) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	nonce, err := generateNonce()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Nonce:  nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func generateNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
