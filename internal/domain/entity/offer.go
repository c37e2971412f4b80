package entity

import "time"

// OfferStatus is the lifecycle state of an offer.
type OfferStatus string

const (
	// OfferStatusPending is the initial state of every offer.
	OfferStatusPending OfferStatus = "pending"
	// OfferStatusAccepted is set by the cleaning owner. At most one offer per cleaning holds it.
	OfferStatusAccepted OfferStatus = "accepted"
	// OfferStatusRejected is set on competing pending offers when another offer is accepted.
	OfferStatusRejected OfferStatus = "rejected"
	// OfferStatusCancelled is set by the offering user.
	OfferStatusCancelled OfferStatus = "cancelled"
)

// String returns the string representation of the OfferStatus.
func (s OfferStatus) String() string {
	return string(s)
}

// IsValid checks if the OfferStatus is a known value.
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusRejected, OfferStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s OfferStatus) IsTerminal() bool {
	return s != OfferStatusPending
}

// CanTransition reports whether an offer in state s may move to next.
// Only pending offers move; rescinding removes the record and has no target state.
func (s OfferStatus) CanTransition(next OfferStatus) bool {
	if s.IsTerminal() {
		return false
	}

	switch next {
	case OfferStatusAccepted, OfferStatusRejected, OfferStatusCancelled:
		return true
	default:
		return false
	}
}

// Offer is a bid by one user to perform another user's cleaning job.
// The (CleaningID, UserID) pair is unique.
type Offer struct {
	CleaningID int64
	UserID     int64
	Username   string // Joined from the offering user on reads.
	Status     OfferStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
