// Package handler contains the HTTP handlers of the JSON API.
package handler

import (
	"time"

	"phresh/internal/domain/entity"
)

// UserResponse is the public view of a user. Credentials are never rendered.
type UserResponse struct {
	ID            int64            `json:"id"`
	Username      string           `json:"username"`
	Email         string           `json:"email"`
	EmailVerified bool             `json:"email_verified"`
	IsActive      bool             `json:"is_active"`
	IsSuperuser   bool             `json:"is_superuser"`
	Profile       *ProfileResponse `json:"profile,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// AccessTokenResponse is returned by login and registration.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterResponse carries the new user together with its first access token.
type RegisterResponse struct {
	UserResponse
	AccessToken AccessTokenResponse `json:"access_token"`
}

// ProfileResponse is the public view of a profile.
type ProfileResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	Email       string    `json:"email,omitempty"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Bio         string    `json:"bio"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CleaningResponse is the public view of a cleaning job.
type CleaningResponse struct {
	ID           int64     `json:"id"`
	Owner        int64     `json:"owner"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CleaningType string    `json:"cleaning_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OfferResponse is the public view of an offer.
type OfferResponse struct {
	CleaningID int64     `json:"cleaning_id"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toUserResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		IsActive:      user.IsActive,
		IsSuperuser:   user.IsSuperuser,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if user.Profile != nil {
		profile := toProfileResponse(user.Profile)
		resp.Profile = &profile
	}

	return resp
}

func toProfileResponse(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Username:    profile.Username,
		Email:       profile.Email,
		FullName:    profile.FullName,
		PhoneNumber: profile.PhoneNumber,
		Bio:         profile.Bio,
		Image:       profile.Image,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

func toCleaningResponse(cleaning *entity.Cleaning) CleaningResponse {
	return CleaningResponse{
		ID:           cleaning.ID,
		Owner:        cleaning.OwnerID,
		Name:         cleaning.Name,
		Description:  cleaning.Description,
		Price:        cleaning.Price,
		CleaningType: cleaning.CleaningType.String(),
		CreatedAt:    cleaning.CreatedAt,
		UpdatedAt:    cleaning.UpdatedAt,
	}
}

func toOfferResponse(offer *entity.Offer) OfferResponse {
	return OfferResponse{
		CleaningID: offer.CleaningID,
		UserID:     offer.UserID,
		Username:   offer.Username,
		Status:     offer.Status.String(),
		CreatedAt:  offer.CreatedAt,
		UpdatedAt:  offer.UpdatedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}
