// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core entity in the system, representing a registered account.
// The credential never leaves the persistence and authentication layers.
type User struct {
	ID            int64      // Primary key assigned by the store.
	Username      string     // Stable public identifier, embedded in access tokens.
	Email         string     // Login identifier.
	EmailVerified bool       // Whether the email address has been confirmed.
	IsActive      bool       // Inactive users cannot authenticate even with a valid token.
	IsSuperuser   bool       // Reserved for administrative tooling.
	Credential    Credential // Salt and hash of the user's password.
	Profile       *Profile   // Default profile created alongside the user. May be nil when not loaded.
	CreatedAt     time.Time  // Timestamp of when this account was created.
	UpdatedAt     time.Time  // Timestamp of the last modification to this account.
}

// Principal returns the token identity for this user.
func (u *User) Principal() Principal {
	return Principal{Username: u.Username}
}

// UserPatch describes a partial update of a user. Nil fields are left unchanged.
type UserPatch struct {
	Email      *string
	Username   *string
	Credential *Credential
}

// Apply merges the non-nil fields of the patch into the user.
// A credential is always replaced as a whole.
func (p UserPatch) Apply(user *User) {
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.Username != nil {
		user.Username = *p.Username
	}
	if p.Credential != nil {
		user.Credential = *p.Credential
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Username == nil && p.Credential == nil
}
