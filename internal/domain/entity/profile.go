package entity

import "time"

// Profile holds the public, user-editable details attached to every account.
type Profile struct {
	ID          int64
	UserID      int64
	FullName    string
	PhoneNumber string
	Bio         string
	Image       string
	Username    string // Joined from the owning user on reads.
	Email       string // Joined from the owning user on reads.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfilePatch describes a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	FullName    *string
	PhoneNumber *string
	Bio         *string
	Image       *string
}

// Apply merges the non-nil fields of the patch into the profile.
func (p ProfilePatch) Apply(profile *Profile) {
	if p.FullName != nil {
		profile.FullName = *p.FullName
	}
	if p.PhoneNumber != nil {
		profile.PhoneNumber = *p.PhoneNumber
	}
	if p.Bio != nil {
		profile.Bio = *p.Bio
	}
	if p.Image != nil {
		profile.Image = *p.Image
	}
}
