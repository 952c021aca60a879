package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MaxPasswordBytes is bcrypt's input ceiling. Longer passwords are
	// silently truncated, so two passwords that share their first 72 bytes
	// are interchangeable.
	MaxPasswordBytes = 72

	// DefaultTokenTTL is the bearer token lifetime when none is configured
	DefaultTokenTTL = 60 * time.Minute
)

var signingMethod = jwt.SigningMethodHS256

// Credentials hashes passwords and issues/verifies bearer tokens.
// It holds no mutable state and is safe for concurrent use.
type Credentials struct {
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

// Option customizes Credentials
type Option func(*Credentials)

// WithClock overrides the time source used for token expiry
func WithClock(now func() time.Time) Option {
	return func(c *Credentials) { c.now = now }
}

// WithBcryptCost overrides the bcrypt work factor
func WithBcryptCost(cost int) Option {
	return func(c *Credentials) { c.bcryptCost = cost }
}

// NewCredentials creates a credential store signing with secret
func NewCredentials(secret string, ttl time.Duration, opts ...Option) *Credentials {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &Credentials{
		secret:     []byte(secret),
		ttl:        ttl,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured token lifetime
func (c *Credentials) TTL() time.Duration {
	return c.ttl
}

// HashPassword returns the bcrypt digest of the first 72 bytes of password
func (c *Credentials) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncatePassword(password), c.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches digest under the same truncation
func (c *Credentials) VerifyPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncatePassword(plain)) == nil
}

// IssueToken signs a token for subject that expires after the configured TTL
func (c *Credentials) IssueToken(subject string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	return jwt.NewWithClaims(signingMethod, claims).SignedString(c.secret)
}

// VerifyToken returns the token subject when the signature is valid and the
// token has not expired. Every failure reports ok=false without a reason.
func (c *Credentials) VerifyToken(token string) (subject string, ok bool) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return "", false
	}

	if claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		return b[:MaxPasswordBytes]
	}
	return b
}
