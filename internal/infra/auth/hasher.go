// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"encoding/base64"

	"phresh/config"
	"phresh/internal/domain/service"
	"phresh/internal/errors"
)

const saltLen = 16 // salt length in bytes

// saltEncoding is used for salts and raw hash bytes stored in a Credential.
var saltEncoding = base64.RawStdEncoding

// NewCredentialHasher returns the hasher selected by auth.hashAlgorithm.
func NewCredentialHasher(cfg *config.Config) (service.CredentialHasher, error) {
	if cfg.Auth == nil {
		return NewArgon2Hasher(nil), nil
	}

	switch cfg.Auth.HashAlgorithm {
	case "", config.HashAlgorithmArgon2id:
		return NewArgon2Hasher(cfg.Auth.Argon2), nil
	case config.HashAlgorithmBcrypt:
		return NewBcryptHasherWithCost(cfg.Auth.BcryptCost), nil
	default:
		return nil, errors.Errorf("unsupported hash algorithm: %s", cfg.Auth.HashAlgorithm)
	}
}

// newSalt reads saltLen bytes from the system CSPRNG and encodes them as text.
func newSalt() ([]byte, string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, "", errors.Wrap(err, "generate salt")
	}

	return salt, saltEncoding.EncodeToString(salt), nil
}

// decodeSalt decodes a stored salt, reporting corrupt data as service.ErrCorruptCredential.
func decodeSalt(encoded string) ([]byte, error) {
	salt, err := saltEncoding.DecodeString(encoded)
	if err != nil || len(salt) == 0 {
		return nil, errors.Wrap(service.ErrCorruptCredential, "decode salt")
	}

	return salt, nil
}
