package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Hash parameters. The produced string is self-describing, so these can be
// raised later without invalidating stored hashes.
const (
	scryptLogN   = 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 16
)

var (
	ErrPasswordMismatch = errors.New("credentials: password mismatch")
	ErrMalformedHash    = errors.New("credentials: malformed password hash")
)

// HashPassword hashes a plaintext password with scrypt and a fresh random
// salt, returning a PHC-style string:
//
//	$scrypt$ln=15,r=8,p=1$<salt>$<key>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("credentials: generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, 1<<scryptLogN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("credentials: derive key: %w", err)
	}

	return fmt.Sprintf("$scrypt$ln=%d,r=%d,p=%d$%s$%s",
		scryptLogN, scryptR, scryptP,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword checks a plaintext password against a stored hash string.
// It returns ErrPasswordMismatch on a wrong password and ErrMalformedHash
// if the stored string cannot be parsed. The comparison of derived keys is
// constant-time.
func VerifyPassword(hash, password string) error {
	logN, r, p, salt, key, err := parseHash(hash)
	if err != nil {
		return err
	}

	derived, err := scrypt.Key([]byte(password), salt, 1<<logN, r, p, len(key))
	if err != nil {
		return fmt.Errorf("credentials: derive key: %w", err)
	}

	if subtle.ConstantTimeCompare(derived, key) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func parseHash(hash string) (logN, r, p int, salt, key []byte, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != "scrypt" {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	for _, param := range strings.Split(parts[2], ",") {
		name, value, ok := strings.Cut(param, "=")
		if !ok {
			return 0, 0, 0, nil, nil, ErrMalformedHash
		}
		n, convErr := strconv.Atoi(value)
		if convErr != nil || n <= 0 {
			return 0, 0, 0, nil, nil, ErrMalformedHash
		}
		switch name {
		case "ln":
			logN = n
		case "r":
			r = n
		case "p":
			p = n
		default:
			return 0, 0, 0, nil, nil, ErrMalformedHash
		}
	}
	if logN == 0 || logN > 31 || r == 0 || p == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(key) == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	return logN, r, p, salt, key, nil
}
