package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"phresh/config"
	"phresh/internal/domain/entity"
	"phresh/internal/domain/service"
	"phresh/internal/errors"
)

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2KeyLen  = 32        // output length in bytes

	// Ceilings for parameters read back from a stored hash.
	argon2MaxMemory = 1 << 20 // 1 GB
	argon2MaxTime   = 64
)

// argon2Hasher derives credentials with argon2id.
// The stored hash records its own cost parameters so they can change without invalidating old credentials:
// $argon2id$v=19$m=65536,t=1,p=4$<hash>
type argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
}

// NewArgon2Hasher creates an argon2id hasher. Zero or out-of-range parameters fall back to the defaults.
func NewArgon2Hasher(params *config.Argon2Config) service.CredentialHasher {
	h := &argon2Hasher{
		time:    argon2Time,
		memory:  argon2Memory,
		threads: argon2Threads,
	}
	if params == nil {
		return h
	}
	if params.Time > 0 && params.Time <= argon2MaxTime {
		h.time = params.Time
	}
	if params.Memory > 0 && params.Memory <= argon2MaxMemory {
		h.memory = params.Memory
	}
	if params.Threads > 0 {
		h.threads = params.Threads
	}

	return h
}

// Generate creates a new random salt and the argon2id hash of plaintext under it.
func (h *argon2Hasher) Generate(plaintext string) (entity.Credential, error) {
	salt, encodedSalt, err := newSalt()
	if err != nil {
		return entity.Credential{}, err
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.time, h.memory, h.threads, argon2KeyLen)
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		argon2.Version,
		h.memory,
		h.time,
		h.threads,
		saltEncoding.EncodeToString(key),
	)

	return entity.Credential{Salt: encodedSalt, Hash: encoded}, nil
}

// Verify recomputes the hash with the stored salt and parameters.
func (h *argon2Hasher) Verify(plaintext string, credential entity.Credential) (bool, error) {
	salt, err := decodeSalt(credential.Salt)
	if err != nil {
		return false, err
	}

	parts := strings.Split(credential.Hash, "$")
	if len(parts) != 5 || parts[1] != "argon2id" {
		return false, errors.Wrap(service.ErrCorruptCredential, "invalid argon2id hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, errors.Wrap(service.ErrCorruptCredential, "unsupported argon2 version")
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, errors.Wrap(service.ErrCorruptCredential, "invalid argon2id parameters")
	}
	if memory == 0 || memory > argon2MaxMemory ||
		iterations == 0 || iterations > argon2MaxTime ||
		threads == 0 || threads > 255 {
		return false, errors.Wrap(service.ErrCorruptCredential, "argon2id parameters out of range")
	}

	expected, err := saltEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errors.Wrap(service.ErrCorruptCredential, "decode argon2id hash")
	}
	keyLen := len(expected)
	if keyLen == 0 || keyLen > 1<<10 {
		return false, errors.Wrapf(service.ErrCorruptCredential, "invalid argon2id key length: %d", keyLen)
	}

	computed := argon2.IDKey([]byte(plaintext), salt, iterations, memory, uint8(threads), uint32(keyLen))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
