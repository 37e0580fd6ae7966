package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"loginflow/config"
	"loginflow/internal/domain/constants"
	"loginflow/internal/domain/service"

	"github.com/pkg/errors"
)

// temporaryPasswordHasher hashes new temporary passwords with one algorithm and verifies both stored formats.
// bcrypt hashes are recognised by their "$2a$", "$2b$" or "$2y$" prefix; anything else is a legacy
// lowercase hex SHA-256 digest.
type temporaryPasswordHasher struct {
	algorithm string
	bcrypt    *bcryptHasher
}

// NewTemporaryPasswordHasher builds the hasher selected by auth.temporaryPasswordAlgorithm.
func NewTemporaryPasswordHasher(cfg *config.Config) (service.TemporaryPasswordHasher, error) {
	algorithm := constants.HashAlgorithmBcrypt
	cost := 0
	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.TemporaryPasswordAlgorithm != "" {
			algorithm = strings.ToLower(cfg.Auth.TemporaryPasswordAlgorithm)
		}
		cost = cfg.Auth.BcryptCost
	}

	switch algorithm {
	case constants.HashAlgorithmBcrypt, constants.HashAlgorithmSHA256:
	default:
		return nil, errors.Errorf("unsupported temporary password algorithm: %s", algorithm)
	}

	return &temporaryPasswordHasher{
		algorithm: algorithm,
		bcrypt:    newBcryptHasher(cost),
	}, nil
}

func (h *temporaryPasswordHasher) Algorithm() string {
	return h.algorithm
}

func (h *temporaryPasswordHasher) Hash(password string) (string, error) {
	if h.algorithm == constants.HashAlgorithmSHA256 {
		return sha256Hex(password), nil
	}

	hash, err := h.bcrypt.Hash(password)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt temporary password")
	}

	return hash, nil
}

func (h *temporaryPasswordHasher) Check(password, hash string) bool {
	if hash == "" {
		return false
	}

	if isBcryptHash(hash) {
		return h.bcrypt.Check(password, hash)
	}

	digest := sha256Hex(password)

	return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))

	return hex.EncodeToString(sum[:])
}
