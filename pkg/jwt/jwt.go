package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidToken covers every validation failure: malformed structure,
	// bad signature, expired or not-yet-valid claims, and issuer mismatch.
	// Callers never learn which check failed.
	ErrInvalidToken = errors.New("invalid token")

	ErrInvalidKey = errors.New("invalid signing key")
)

// Claims represents session token claims
type Claims struct {
	// Standard claims
	Issuer    string `json:"iss,omitempty"`
	Subject   string `json:"sub,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`

	// Custom claims
	Username        string              `json:"username,omitempty"`
	Discriminator   string              `json:"discriminator,omitempty"`
	GuildIDs        []string            `json:"guild_ids,omitempty"`
	GuildRoles      map[string][]string `json:"guild_roles,omitempty"`
	CanCreateEvents bool                `json:"can_create_events"`
}

// valid checks the time-based claims
func (c *Claims) valid() error {
	now := time.Now().Unix()

	if c.ExpiresAt != 0 && now > c.ExpiresAt {
		return ErrInvalidToken
	}

	if c.NotBefore != 0 && now < c.NotBefore {
		return ErrInvalidToken
	}

	return nil
}

// Service signs and validates HS256 session tokens
type Service struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// Config holds JWT service configuration
type Config struct {
	SecretKey      string
	Issuer         string
	ExpirationMins int
}

// NewService creates a new JWT service
func NewService(cfg Config) (*Service, error) {
	if cfg.SecretKey == "" {
		return nil, ErrInvalidKey
	}

	return &Service{
		secret:     []byte(cfg.SecretKey),
		issuer:     cfg.Issuer,
		expiration: time.Duration(cfg.ExpirationMins) * time.Minute,
	}, nil
}

// Sign creates a signed JWT token
func (s *Service) Sign(claims Claims) (string, error) {
	now := time.Now()

	// Set standard claims
	claims.Issuer = s.issuer
	claims.IssuedAt = now.Unix()
	claims.NotBefore = now.Unix()
	if claims.ExpiresAt == 0 {
		claims.ExpiresAt = now.Add(s.expiration).Unix()
	}

	header := map[string]string{
		"alg": "HS256",
		"typ": "JWT",
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	message := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	signature := s.sign(message)

	return message + "." + base64URLEncode(signature), nil
}

// Validate validates a JWT token and returns the claims.
// Any failure, structural or cryptographic, returns ErrInvalidToken so the
// response cannot be used to probe which check rejected the token.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}

	headerB64, claimsB64, signatureB64 := parts[0], parts[1], parts[2]

	signature, err := base64URLDecode(signatureB64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	message := headerB64 + "." + claimsB64
	if !hmac.Equal(signature, s.sign(message)) {
		return nil, ErrInvalidToken
	}

	claimsJSON, err := base64URLDecode(claimsB64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	if err := claims.valid(); err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != s.issuer {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}

// GetExpiration returns the token expiration duration
func (s *Service) GetExpiration() time.Duration {
	return s.expiration
}

func (s *Service) sign(message string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(message))
	return mac.Sum(nil)
}

// NewTestService creates a JWT service with a fixed secret for testing
// This should only be used in tests, not in production code
func NewTestService(secret, issuer string, expiration time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
	}
}

// Helper functions

func base64URLEncode(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

func base64URLDecode(s string) ([]byte, error) {
	// Add padding if needed
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return base64.URLEncoding.DecodeString(s)
}
