package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadToken = errors.New("invalid token")

// HashPassword derives a salted bcrypt hash. The stored secret is never the
// plaintext; verification re-hashes the candidate and compares digests.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// ResumeClaims bind a resume token to one user. A resume token lets the
// desktop surface re-establish a session after a lock without re-typing
// the password; it expires with the session deadline and carries a
// fingerprint of the password hash it was minted against.
type ResumeClaims struct {
	UserID      int64  `json:"uid"`
	Role        string `json:"role"`
	Fingerprint string `json:"fp"`
	jwt.RegisteredClaims
}

// Fingerprint condenses a stored password hash for inclusion in token
// claims. It never leaves the process except inside a signed token, and
// changing the password changes it.
func Fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}

func MakeResumeToken(userID int64, role, fingerprint, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := ResumeClaims{
		UserID:      userID,
		Role:        role,
		Fingerprint: fingerprint,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

func ParseResumeToken(raw, secret string) (*ResumeClaims, error) {
	tok, err := jwt.ParseWithClaims(raw, &ResumeClaims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*ResumeClaims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}
