package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"phresh/internal/delivery/api/response"
	"phresh/internal/domain/entity"
	"phresh/internal/errors"
	"phresh/internal/usecase"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
}

// ProfileHandler serves profile reads and self-service updates.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{profileUC: params.ProfileUC}
}

// UpdateProfileRequest holds the optional profile fields. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`
	Image       *string `json:"image" validate:"omitempty,max=2048"`
}

// GetByUsername returns the profile of the named user.
func (h *ProfileHandler) GetByUsername(c echo.Context) error {
	profile, err := h.profileUC.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(profile))
}

// UpdateOwn updates the caller's profile.
func (h *ProfileHandler) UpdateOwn(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profileUC.UpdateOwn(c.Request().Context(), user, entity.ProfilePatch{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Image:       req.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(profile))
}
