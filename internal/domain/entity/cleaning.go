package entity

import "time"

// CleaningType categorizes the work requested by a cleaning job.
type CleaningType string

const (
	// CleaningTypeDustUp is a light dusting.
	CleaningTypeDustUp CleaningType = "dust_up"
	// CleaningTypeSpotClean is a targeted clean. It is the default.
	CleaningTypeSpotClean CleaningType = "spot_clean"
	// CleaningTypeFullClean is a complete clean.
	CleaningTypeFullClean CleaningType = "full_clean"
)

// String returns the string representation of the CleaningType.
func (t CleaningType) String() string {
	return string(t)
}

// IsValid checks if the CleaningType is a known value.
func (t CleaningType) IsValid() bool {
	switch t {
	case CleaningTypeDustUp, CleaningTypeSpotClean, CleaningTypeFullClean:
		return true
	default:
		return false
	}
}

// Cleaning is a job posted by its owner. The owner never changes after creation.
type Cleaning struct {
	ID           int64
	OwnerID      int64
	Name         string
	Description  string
	Price        float64
	CleaningType CleaningType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnedBy reports whether the given user owns the cleaning.
func (c *Cleaning) OwnedBy(userID int64) bool {
	return c.OwnerID == userID
}

// CleaningPatch describes a partial cleaning update. Nil fields are left unchanged.
type CleaningPatch struct {
	Name         *string
	Description  *string
	Price        *float64
	CleaningType *CleaningType
}

// Apply merges the non-nil fields of the patch into the cleaning.
func (p CleaningPatch) Apply(cleaning *Cleaning) {
	if p.Name != nil {
		cleaning.Name = *p.Name
	}
	if p.Description != nil {
		cleaning.Description = *p.Description
	}
	if p.Price != nil {
		cleaning.Price = *p.Price
	}
	if p.CleaningType != nil {
		cleaning.CleaningType = *p.CleaningType
	}
}
