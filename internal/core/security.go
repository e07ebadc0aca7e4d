// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 100_000
	saltLength     = 16
	keyLength      = 32
)

// HashPassword derives a storable secret from a plaintext password.
// The stored form is "<salt_hex>:<key_hex>"; the salt is fresh on every
// call, so two hashes of the same password never match byte-for-byte.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("hash password: %w", ErrValidation)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, hashIterations, keyLength, sha256.New)

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the stored secret.
// A malformed stored secret (missing colon, bad hex) is a verification
// failure, never an error: authentication must not crash on bad rows.
func VerifyPassword(password, stored string) bool {
	salt, expected, err := decodeSecret(stored)
	if err != nil {
		return false
	}

	key := pbkdf2.Key([]byte(password), salt, hashIterations, keyLength, sha256.New)

	return subtle.ConstantTimeCompare(key, expected) == 1
}

var dummySecret string

func init() {
	secret, err := HashPassword("dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy secret: %v", err))
	}
	dummySecret = secret
}

// VerifyPasswordTimingSafe behaves like VerifyPassword but burns a full
// derivation against a dummy secret when stored is nil or empty, so the
// caller's latency does not reveal whether an account exists.
func VerifyPasswordTimingSafe(password string, stored *string) bool {
	secret := dummySecret
	if stored != nil && *stored != "" {
		secret = *stored
	}

	valid := VerifyPassword(password, secret)

	if stored == nil || *stored == "" {
		return false
	}

	return valid
}

func decodeSecret(stored string) ([]byte, []byte, error) {
	saltHex, keyHex, found := strings.Cut(stored, ":")
	if !found {
		return nil, nil, fmt.Errorf("invalid secret format")
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, nil, fmt.Errorf("decode key: %w", err)
	}

	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, fmt.Errorf("empty secret segment")
	}

	return salt, key, nil
}
