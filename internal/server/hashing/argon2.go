package hashing

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id production defaults: 64 MiB memory, 3 passes, 4 lanes. Memory
// hardness is the point; these exceed the RFC 9106 second recommended
// option.
const (
	DefaultArgon2idMemory  uint32 = 64 * 1024 // KiB
	DefaultArgon2idTime    uint32 = 3
	DefaultArgon2idThreads uint8  = 4
	DefaultArgon2idKeyLen  uint32 = 32
	DefaultArgon2idSaltLen uint32 = 16
)

// Argon2idOptions configures an Argon2id hasher. All parameters are encoded
// into the output string, so changes only affect newly produced hashes.
type Argon2idOptions struct {
	Memory  uint32 // KiB
	Time    uint32 // passes over memory
	Threads uint8  // lanes
	KeyLen  uint32
	SaltLen uint32
}

func DefaultArgon2idOptions() Argon2idOptions {
	return Argon2idOptions{
		Memory:  DefaultArgon2idMemory,
		Time:    DefaultArgon2idTime,
		Threads: DefaultArgon2idThreads,
		KeyLen:  DefaultArgon2idKeyLen,
		SaltLen: DefaultArgon2idSaltLen,
	}
}

// Argon2id hashes passwords with Argon2id in PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt base64>$<digest base64>
//
// Base64 uses the raw (unpadded) standard alphabet, matching the Argon2
// reference implementation.
type Argon2id struct {
	opts Argon2idOptions
}

func NewArgon2id(opts Argon2idOptions) (*Argon2id, error) {
	if opts.Time < 1 {
		return nil, errOption("argon2id time must be >= 1")
	}
	if opts.Threads < 1 {
		return nil, errOption("argon2id threads must be >= 1")
	}
	if opts.Memory < 8*uint32(opts.Threads) {
		return nil, errOption("argon2id memory must be >= 8*threads KiB")
	}
	if opts.KeyLen < 16 {
		return nil, errOption("argon2id key length must be >= 16 bytes")
	}
	if opts.SaltLen < 16 {
		return nil, errOption("argon2id salt must be >= 16 bytes")
	}
	return &Argon2id{opts: opts}, nil
}

func (h *Argon2id) Algorithm() Algorithm { return AlgorithmArgon2id }

func (h *Argon2id) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt, err := randomSalt(int(h.opts.SaltLen))
	if err != nil {
		return "", err
	}
	digest := argon2.IDKey([]byte(password), salt,
		h.opts.Time, h.opts.Memory, h.opts.Threads, h.opts.KeyLen)
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		AlgorithmArgon2id, argon2.Version,
		h.opts.Memory, h.opts.Time, h.opts.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest)), nil
}

func (h *Argon2id) Verify(password, encoded string) bool {
	if password == "" {
		return false
	}
	p, ok := parseArgon2id(encoded)
	if !ok {
		return false
	}
	computed := argon2.IDKey([]byte(password), p.salt,
		p.time, p.memory, p.threads, uint32(len(p.digest)))
	if len(computed) != len(p.digest) {
		return false
	}
	return subtle.ConstantTimeCompare(computed, p.digest) == 1
}

func (h *Argon2id) NeedsRehash(encoded string) bool {
	p, ok := parseArgon2id(encoded)
	if !ok {
		return true
	}
	return p.memory != h.opts.Memory ||
		p.time != h.opts.Time ||
		p.threads != h.opts.Threads ||
		uint32(len(p.digest)) != h.opts.KeyLen ||
		uint32(len(p.salt)) != h.opts.SaltLen
}

type argon2idParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	digest  []byte
}

// parseArgon2id decodes the 6-segment PHC string (leading "$" yields an
// empty first segment).
func parseArgon2id(encoded string) (argon2idParams, bool) {
	var p argon2idParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != string(AlgorithmArgon2id) {
		return p, false
	}

	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if !strings.HasPrefix(parts[2], "v=") || err != nil || version != argon2.Version {
		return p, false
	}

	costs := strings.Split(parts[3], ",")
	if len(costs) != 3 {
		return p, false
	}
	memory, errM := parseCost(costs[0], "m")
	time, errT := parseCost(costs[1], "t")
	threads, errP := parseCost(costs[2], "p")
	if errM != nil || errT != nil || errP != nil || threads > 255 || threads < 1 {
		return p, false
	}
	// argon2.IDKey panics on these, so they must fail parsing instead.
	if time < 1 || memory < 8*threads {
		return p, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, false
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return p, false
	}

	p.memory = uint32(memory)
	p.time = uint32(time)
	p.threads = uint8(threads)
	p.salt = salt
	p.digest = digest
	return p, true
}

func parseCost(kv, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(kv, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, kv)
	}
	return strconv.ParseUint(kv[len(prefix):], 10, 32)
}
