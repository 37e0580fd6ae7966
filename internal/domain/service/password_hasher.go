// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool
}

// TemporaryPasswordHasher hashes issued temporary passwords.
// Check accepts every stored format the hasher knows, regardless of the one Hash produces.
type TemporaryPasswordHasher interface {
	PasswordHasher

	// Algorithm names the format Hash produces.
	Algorithm() string
}
