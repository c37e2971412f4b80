package auth

import (
	"crypto/hmac"
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"

	"phresh/internal/domain/entity"
	"phresh/internal/domain/service"
	"phresh/internal/errors"
)

// bcryptHasher is a concrete implementation of the CredentialHasher interface using bcrypt.
// The password is first keyed with the credential salt through HMAC-SHA256, so the
// stored salt takes part in the hash and long passwords stay under bcrypt's 72 byte limit.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher with the default cost.
func NewBcryptHasher() service.CredentialHasher {
	return NewBcryptHasherWithCost(bcrypt.DefaultCost)
}

// NewBcryptHasherWithCost creates a bcrypt hasher. Out of range costs fall back to the default.
func NewBcryptHasherWithCost(cost int) service.CredentialHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// Generate creates a new salt and the bcrypt hash of the salted password.
func (h *bcryptHasher) Generate(plaintext string) (entity.Credential, error) {
	salt, encodedSalt, err := newSalt()
	if err != nil {
		return entity.Credential{}, err
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(plaintext, salt), h.cost)
	if err != nil {
		return entity.Credential{}, errors.Wrap(err, "bcrypt generate")
	}

	return entity.Credential{Salt: encodedSalt, Hash: string(hash)}, nil
}

// Verify compares the salted password with the stored bcrypt hash.
func (h *bcryptHasher) Verify(plaintext string, credential entity.Credential) (bool, error) {
	salt, err := decodeSalt(credential.Salt)
	if err != nil {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(credential.Hash), prehash(plaintext, salt))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Wrap(service.ErrCorruptCredential, err.Error())
	}
}

func prehash(plaintext string, salt []byte) []byte {
	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(plaintext))
	sum := mac.Sum(nil)

	encoded := make([]byte, saltEncoding.EncodedLen(len(sum)))
	saltEncoding.Encode(encoded, sum)

	return encoded
}
