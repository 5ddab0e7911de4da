package mockserver

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "mallkit-mock"

// ErrTokenRevoked is returned for a well-formed token this issuer does not
// know, such as one issued before a restart.
var ErrTokenRevoked = errors.New("token not issued by this server")

// Claims are the JWT claims of an issued token.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 tokens and remembers which ones it issued.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu     sync.RWMutex
	issued map[string]int64
}

// NewTokenIssuer creates an issuer signing with secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		issued: make(map[string]int64),
	}
}

// Issue signs a token for userID.
func (t *TokenIssuer) Issue(userID int64) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	t.mu.Lock()
	t.issued[claims.ID] = userID
	t.mu.Unlock()
	return signed, nil
}

// Verify checks the signature, expiry and issuer of raw and returns the user
// id it was issued for.
func (t *TokenIssuer) Verify(raw string) (int64, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}

	t.mu.RLock()
	uid, ok := t.issued[claims.ID]
	t.mu.RUnlock()
	if !ok || uid != claims.UserID {
		return 0, ErrTokenRevoked
	}
	return uid, nil
}

// Revoke forgets every token issued to userID.
func (t *TokenIssuer) Revoke(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, uid := range t.issued {
		if uid == userID {
			delete(t.issued, id)
		}
	}
}
