package hashing

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastHashers returns one hasher per algorithm with cheap parameters so the
// round-trip matrix stays quick. Parameter defaults are covered separately.
func fastHashers(t *testing.T) []Hasher {
	t.Helper()

	b, err := NewBcrypt(BcryptOptions{Cost: 4})
	require.NoError(t, err)

	p, err := NewPBKDF2(PBKDF2Options{Iterations: 1000, SaltLen: 16, KeyLen: 32})
	require.NoError(t, err)

	a, err := NewArgon2id(Argon2idOptions{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16})
	require.NoError(t, err)

	return []Hasher{b, p, a}
}

func TestHash_VerifyRoundTrip_AllAlgorithms(t *testing.T) {
	for _, h := range fastHashers(t) {
		t.Run(string(h.Algorithm()), func(t *testing.T) {
			encoded, err := h.Hash("correct horse battery staple")
			require.NoError(t, err)
			require.NotEmpty(t, encoded)

			assert.True(t, h.Verify("correct horse battery staple", encoded))
			assert.False(t, h.Verify("wrong password", encoded))
			assert.False(t, h.Verify("", encoded))
		})
	}
}

func TestHash_NonDeterministic_AllAlgorithms(t *testing.T) {
	for _, h := range fastHashers(t) {
		t.Run(string(h.Algorithm()), func(t *testing.T) {
			first, err := h.Hash("same password")
			require.NoError(t, err)
			second, err := h.Hash("same password")
			require.NoError(t, err)

			assert.NotEqual(t, first, second, "distinct salts must yield distinct encodings")
			assert.True(t, h.Verify("same password", first))
			assert.True(t, h.Verify("same password", second))
		})
	}
}

func TestHash_EmptyPassword_AllAlgorithms(t *testing.T) {
	for _, h := range fastHashers(t) {
		t.Run(string(h.Algorithm()), func(t *testing.T) {
			_, err := h.Hash("")
			assert.ErrorIs(t, err, ErrEmptyPassword)
		})
	}
}

func TestVerify_MalformedHash_AllAlgorithms(t *testing.T) {
	salt := base64.RawStdEncoding.EncodeToString(make([]byte, 16))
	digest := base64.RawStdEncoding.EncodeToString(make([]byte, 32))

	malformed := []string{
		"",
		"not a hash",
		"pbkdf2_sha256:abc:zz:zz",
		"$argon2id$v=19$m=bad$x$y",
		"$2a$zz$invalid",
		"pbkdf2_sha256:1000:!!!:!!!",
		// well-formed strings with parameters argon2.IDKey rejects by panic
		"$argon2id$v=19$m=65536,t=0,p=4$" + salt + "$" + digest,
		"$argon2id$v=19$m=8,t=3,p=4$" + salt + "$" + digest,
	}
	for _, h := range fastHashers(t) {
		t.Run(string(h.Algorithm()), func(t *testing.T) {
			for _, bad := range malformed {
				assert.False(t, h.Verify("password", bad), "hash %q must not verify", bad)
			}
		})
	}
}

func TestNeedsRehash_FalseForFreshHash(t *testing.T) {
	for _, h := range fastHashers(t) {
		t.Run(string(h.Algorithm()), func(t *testing.T) {
			encoded, err := h.Hash("password")
			require.NoError(t, err)
			assert.False(t, h.NeedsRehash(encoded))
		})
	}
}

func TestNeedsRehash_TrueForStaleParameters(t *testing.T) {
	t.Run("bcrypt cost raised", func(t *testing.T) {
		old, err := NewBcrypt(BcryptOptions{Cost: 4})
		require.NoError(t, err)
		current, err := NewBcrypt(BcryptOptions{Cost: 5})
		require.NoError(t, err)

		encoded, err := old.Hash("password")
		require.NoError(t, err)
		assert.True(t, current.NeedsRehash(encoded))
		assert.True(t, current.Verify("password", encoded), "stale hash must still verify")
	})

	t.Run("pbkdf2 iterations raised", func(t *testing.T) {
		old, err := NewPBKDF2(PBKDF2Options{Iterations: 1000, SaltLen: 16, KeyLen: 32})
		require.NoError(t, err)
		current, err := NewPBKDF2(PBKDF2Options{Iterations: 2000, SaltLen: 16, KeyLen: 32})
		require.NoError(t, err)

		encoded, err := old.Hash("password")
		require.NoError(t, err)
		assert.True(t, current.NeedsRehash(encoded))
		assert.True(t, current.Verify("password", encoded))
	})

	t.Run("argon2id memory raised", func(t *testing.T) {
		old, err := NewArgon2id(Argon2idOptions{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16})
		require.NoError(t, err)
		current, err := NewArgon2id(Argon2idOptions{Memory: 16 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16})
		require.NoError(t, err)

		encoded, err := old.Hash("password")
		require.NoError(t, err)
		assert.True(t, current.NeedsRehash(encoded))
		assert.True(t, current.Verify("password", encoded))
	})
}

func TestNeedsRehash_TrueForUnparsableHash(t *testing.T) {
	for _, h := range fastHashers(t) {
		t.Run(string(h.Algorithm()), func(t *testing.T) {
			assert.True(t, h.NeedsRehash("garbage"))
		})
	}
}

func TestForAlgorithm(t *testing.T) {
	for _, name := range []string{"bcrypt", "pbkdf2_sha256", "argon2id"} {
		h, err := ForAlgorithm(name)
		require.NoError(t, err)
		assert.Equal(t, Algorithm(name), h.Algorithm())
	}

	_, err := ForAlgorithm("md5")
	assert.Error(t, err)
}

func TestEncodedFormats_SelfDescribing(t *testing.T) {
	p, err := NewPBKDF2(PBKDF2Options{Iterations: 1000, SaltLen: 16, KeyLen: 32})
	require.NoError(t, err)
	encoded, err := p.Hash("password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "pbkdf2_sha256:1000:"))
	assert.Len(t, strings.Split(encoded, ":"), 4)

	a, err := NewArgon2id(Argon2idOptions{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16})
	require.NoError(t, err)
	encoded, err = a.Hash("password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=8192,t=1,p=1$"))

	b, err := NewBcrypt(BcryptOptions{Cost: 4})
	require.NoError(t, err)
	encoded, err = b.Hash("password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$2"))
}

func TestConstructor_RejectsBadOptions(t *testing.T) {
	_, err := NewBcrypt(BcryptOptions{Cost: 99})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewPBKDF2(PBKDF2Options{Iterations: 0, SaltLen: 16, KeyLen: 32})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewPBKDF2(PBKDF2Options{Iterations: 1000, SaltLen: 8, KeyLen: 32})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewArgon2id(Argon2idOptions{Memory: 4, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
