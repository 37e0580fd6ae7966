package auth

import (
	"testing"

	"loginflow/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// A well-formed digest that belongs to no password used below.
const unrelatedDigest = "2a1b8a9c0d1a6d3a0b5e5e2d5d3d0b0f0c9a8f7e6d5c4b3a29181706f5e4d3c2"

func newTempHasher(t *testing.T, algorithm string) *temporaryPasswordHasher {
	t.Helper()

	h, err := NewTemporaryPasswordHasher(&config.Config{Auth: &config.AuthConfig{
		TemporaryPasswordAlgorithm: algorithm,
		BcryptCost:                 bcrypt.MinCost,
	}})
	require.NoError(t, err)

	return h.(*temporaryPasswordHasher)
}

func TestTemporaryPasswordHasher_SHA256(t *testing.T) {
	h := newTempHasher(t, "sha256")

	hash, err := h.Hash("Tmp!Pass1")
	require.NoError(t, err)
	assert.Equal(t, sha256Hex("Tmp!Pass1"), hash)
	assert.Len(t, hash, 64)

	// Deterministic and unsalted.
	again, err := h.Hash("Tmp!Pass1")
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	assert.True(t, h.Check("Tmp!Pass1", hash))
	assert.False(t, h.Check("tmp!pass1", hash))
	assert.Equal(t, "sha256", h.Algorithm())
}

func TestTemporaryPasswordHasher_KnownDigest(t *testing.T) {
	// sha256("abc")
	const abc = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	assert.Equal(t, abc, sha256Hex("abc"))
}

func TestTemporaryPasswordHasher_Bcrypt(t *testing.T) {
	h := newTempHasher(t, "bcrypt")

	hash, err := h.Hash("Tmp!Pass1")
	require.NoError(t, err)
	assert.True(t, isBcryptHash(hash))

	again, err := h.Hash("Tmp!Pass1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "bcrypt hashes are salted")

	assert.True(t, h.Check("Tmp!Pass1", hash))
	assert.False(t, h.Check("Tmp!Pass2", hash))
}

func TestTemporaryPasswordHasher_VerifiesBothFormats(t *testing.T) {
	h := newTempHasher(t, "bcrypt")

	assert.True(t, h.Check("Tmp!Pass1", sha256Hex("Tmp!Pass1")), "legacy digest")
	assert.False(t, h.Check("Tmp!Pass1", unrelatedDigest), "unrelated digest")
	assert.False(t, h.Check("Tmp!Pass1", ""))

	sha := newTempHasher(t, "sha256")
	bcryptHash, err := h.Hash("Tmp!Pass1")
	require.NoError(t, err)
	assert.True(t, sha.Check("Tmp!Pass1", bcryptHash))
}

func TestTemporaryPasswordHasher_DigestComparedExactly(t *testing.T) {
	h := newTempHasher(t, "sha256")

	assert.True(t, h.Check("abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"))
	assert.False(t, h.Check("abc", "BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD"))
}

func TestNewTemporaryPasswordHasher(t *testing.T) {
	h, err := NewTemporaryPasswordHasher(nil)
	require.NoError(t, err)
	assert.Equal(t, "bcrypt", h.Algorithm())

	_, err = NewTemporaryPasswordHasher(&config.Config{Auth: &config.AuthConfig{TemporaryPasswordAlgorithm: "md5"}})
	assert.Error(t, err)
}
