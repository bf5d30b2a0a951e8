package hashing

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 production defaults: 600k iterations tracks the current OWASP
// recommendation for PBKDF2-HMAC-SHA256.
const (
	DefaultPBKDF2Iterations = 600_000
	DefaultPBKDF2SaltLen    = 16
	DefaultPBKDF2KeyLen     = 32
)

// PBKDF2Options configures a PBKDF2-HMAC-SHA256 hasher.
type PBKDF2Options struct {
	Iterations int
	SaltLen    int
	KeyLen     int
}

func DefaultPBKDF2Options() PBKDF2Options {
	return PBKDF2Options{
		Iterations: DefaultPBKDF2Iterations,
		SaltLen:    DefaultPBKDF2SaltLen,
		KeyLen:     DefaultPBKDF2KeyLen,
	}
}

// PBKDF2 hashes passwords with PBKDF2-HMAC-SHA256.
//
// Encoded format, colon-delimited:
//
//	pbkdf2_sha256:<iterations>:<salt base64>:<digest base64>
//
// Base64 uses the raw (unpadded) standard alphabet.
type PBKDF2 struct {
	opts PBKDF2Options
}

func NewPBKDF2(opts PBKDF2Options) (*PBKDF2, error) {
	if opts.Iterations < 1 {
		return nil, errOption("pbkdf2 iterations must be >= 1")
	}
	if opts.SaltLen < 16 {
		return nil, errOption("pbkdf2 salt must be >= 16 bytes")
	}
	if opts.KeyLen < 16 {
		return nil, errOption("pbkdf2 key length must be >= 16 bytes")
	}
	return &PBKDF2{opts: opts}, nil
}

func (h *PBKDF2) Algorithm() Algorithm { return AlgorithmPBKDF2 }

func (h *PBKDF2) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt, err := randomSalt(h.opts.SaltLen)
	if err != nil {
		return "", err
	}
	digest := pbkdf2.Key([]byte(password), salt, h.opts.Iterations, h.opts.KeyLen, sha256.New)
	return strings.Join([]string{
		string(AlgorithmPBKDF2),
		strconv.Itoa(h.opts.Iterations),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	}, ":"), nil
}

func (h *PBKDF2) Verify(password, encoded string) bool {
	if password == "" {
		return false
	}
	iterations, salt, digest, ok := parsePBKDF2(encoded)
	if !ok {
		return false
	}
	// Recompute with the embedded parameters, not the current defaults.
	computed := pbkdf2.Key([]byte(password), salt, iterations, len(digest), sha256.New)
	if len(computed) != len(digest) {
		return false
	}
	return subtle.ConstantTimeCompare(computed, digest) == 1
}

func (h *PBKDF2) NeedsRehash(encoded string) bool {
	iterations, salt, digest, ok := parsePBKDF2(encoded)
	if !ok {
		return true
	}
	return iterations != h.opts.Iterations ||
		len(salt) != h.opts.SaltLen ||
		len(digest) != h.opts.KeyLen
}

func parsePBKDF2(encoded string) (iterations int, salt, digest []byte, ok bool) {
	parts := strings.Split(encoded, ":")
	if len(parts) != 4 || parts[0] != string(AlgorithmPBKDF2) {
		return 0, nil, nil, false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < 1 {
		return 0, nil, nil, false
	}
	salt, err = base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return 0, nil, nil, false
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(digest) == 0 {
		return 0, nil, nil, false
	}
	return iterations, salt, digest, true
}
