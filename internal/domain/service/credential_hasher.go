// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"errors"

	"phresh/internal/domain/entity"
)

// ErrCorruptCredential is returned when a stored credential cannot be decoded or compared.
var ErrCorruptCredential = errors.New("stored credential is corrupt")

// CredentialHasher defines the interface for password hashing and verification.
// This abstracts the underlying KDF (e.g., argon2id or bcrypt), keeping the domain pure.
type CredentialHasher interface {
	// Generate creates a fresh random salt and derives the hash of the plaintext with it.
	Generate(plaintext string) (entity.Credential, error)

	// Verify recomputes the hash of plaintext with the stored salt and compares in constant time.
	// A wrong password yields (false, nil); only undecodable stored data yields an error.
	Verify(plaintext string, credential entity.Credential) (bool, error)
}
