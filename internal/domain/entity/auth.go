package entity

import "strings"

// Credential is a salted password hash. It is created at registration,
// replaced wholesale on password change, and immutable otherwise.
type Credential struct {
	Salt string // Random per-credential salt, text encoded.
	Hash string // KDF output for (password, salt), text encoded.
}

// IsZero reports whether the credential carries no data.
func (c Credential) IsZero() bool {
	return c.Salt == "" && c.Hash == ""
}

// Principal is the minimal identity embedded in an access token.
// It never carries secrets.
type Principal struct {
	Username string
}

// IsValid reports whether the principal has a stable identity.
func (p Principal) IsValid() bool {
	return strings.TrimSpace(p.Username) != ""
}
