package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"phresh/internal/delivery/api/response"
	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/errors"
	"phresh/internal/usecase"
)

// CleaningHandlerParams holds dependencies for CleaningHandler, injected by Fx.
type CleaningHandlerParams struct {
	fx.In

	CleaningUC usecase.CleaningUsecase
}

// CleaningHandler serves the cleaning job endpoints.
type CleaningHandler struct {
	cleaningUC usecase.CleaningUsecase
}

// NewCleaningHandler is the constructor for CleaningHandler
func NewCleaningHandler(params CleaningHandlerParams) *CleaningHandler {
	return &CleaningHandler{cleaningUC: params.CleaningUC}
}

// CreateCleaningRequest represents the request body for posting a cleaning job.
type CreateCleaningRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"gte=0,lt=100000000"`
	CleaningType string  `json:"cleaning_type" validate:"omitempty,oneof=dust_up spot_clean full_clean"`
}

// UpdateCleaningRequest holds the optional cleaning fields. An explicit null cleaning_type is rejected.
type UpdateCleaningRequest struct {
	Name         *string              `json:"name" validate:"omitempty,max=255"`
	Description  *string              `json:"description"`
	Price        *float64             `json:"price" validate:"omitempty,gte=0,lt=100000000"`
	CleaningType nullableCleaningType `json:"cleaning_type"`
}

// nullableCleaningType tells an absent field apart from an explicit null.
type nullableCleaningType struct {
	set   bool
	null  bool
	value entity.CleaningType
}

func (n *nullableCleaningType) UnmarshalJSON(data []byte) error {
	n.set = true
	if string(data) == "null" {
		n.null = true

		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.Wrap(err, "cleaning_type must be a string")
	}
	n.value = entity.CleaningType(value)

	return nil
}

// Create posts a new cleaning job owned by the caller.
func (h *CleaningHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateCleaningRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cleaning, err := h.cleaningUC.Create(c.Request().Context(), user, &usecase.CreateCleaningInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CleaningType: entity.CleaningType(req.CleaningType),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCleaningResponse(cleaning))
}

// Get returns a cleaning job by id.
func (h *CleaningHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cleaning, err := h.cleaningUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCleaningResponse(cleaning))
}

// ListMine returns the caller's cleaning jobs.
func (h *CleaningHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	cleanings, err := h.cleaningUC.ListMine(c.Request().Context(), user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mapSlice(cleanings, toCleaningResponse))
}

// Update modifies a cleaning job owned by the caller.
func (h *CleaningHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCleaningRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.CleaningType.null {
		return domainerrors.ErrInvalidCleaningType
	}

	patch := entity.CleaningPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.CleaningType.set {
		patch.CleaningType = &req.CleaningType.value
	}

	cleaning, err := h.cleaningUC.Update(c.Request().Context(), user, id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCleaningResponse(cleaning))
}

// Delete removes a cleaning job owned by the caller.
func (h *CleaningHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.cleaningUC.Delete(c.Request().Context(), user, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"id": id})
}
