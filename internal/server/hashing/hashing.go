// Package hashing implements the interchangeable password-hashing schemes
// used for account credentials: bcrypt (production default),
// PBKDF2-HMAC-SHA256, and Argon2id.
//
// Every scheme produces a single self-describing encoded string embedding
// the algorithm tag, its tunable parameters, the salt, and the digest, so
// verification never depends on out-of-band configuration. Parameters can
// be raised release-to-release without invalidating stored hashes: old
// hashes verify against their own embedded parameters and are flagged by
// NeedsRehash for an opportunistic upgrade on the next successful login.
package hashing

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Algorithm identifies a password-hashing scheme.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmPBKDF2   Algorithm = "pbkdf2_sha256"
	AlgorithmArgon2id Algorithm = "argon2id"
)

var (
	// ErrEmptyPassword is returned by Hash for an empty plaintext.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrInvalidOptions is returned by constructors for out-of-range
	// parameters.
	ErrInvalidOptions = errors.New("invalid hasher options")
)

// Hasher is the contract shared by all schemes. Implementations are
// immutable after construction and safe for concurrent use.
type Hasher interface {
	// Hash derives an encoded hash from the plaintext using a fresh random
	// salt. Two calls with the same password produce different results.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash. It never
	// returns an error: malformed or unparsable hashes verify as false.
	// The digest is recomputed with the parameters embedded in the hash,
	// not the hasher's current defaults, and compared in constant time.
	Verify(password, encoded string) bool

	// NeedsRehash reports whether the hash was produced with parameters
	// that differ from the hasher's current configuration. Unparsable
	// hashes report true so they get replaced on the next login.
	NeedsRehash(encoded string) bool

	// Algorithm returns the scheme identifier.
	Algorithm() Algorithm
}

// ForAlgorithm builds a hasher for the named algorithm with its production
// default parameters. Used by configuration to select the active scheme.
func ForAlgorithm(name string) (Hasher, error) {
	switch Algorithm(name) {
	case AlgorithmBcrypt:
		return NewBcrypt(DefaultBcryptOptions())
	case AlgorithmPBKDF2:
		return NewPBKDF2(DefaultPBKDF2Options())
	case AlgorithmArgon2id:
		return NewArgon2id(DefaultArgon2idOptions())
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", name)
	}
}

func randomSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return b, nil
}

func errOption(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, msg)
}
