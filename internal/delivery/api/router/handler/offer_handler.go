package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"phresh/internal/delivery/api/response"
	"phresh/internal/errors"
	"phresh/internal/usecase"
)

// OfferHandlerParams holds dependencies for OfferHandler, injected by Fx.
type OfferHandlerParams struct {
	fx.In

	OfferUC usecase.OfferUsecase
}

// OfferHandler serves the offer endpoints nested under a cleaning job.
type OfferHandler struct {
	offerUC usecase.OfferUsecase
}

// NewOfferHandler is the constructor for OfferHandler
func NewOfferHandler(params OfferHandlerParams) *OfferHandler {
	return &OfferHandler{offerUC: params.OfferUC}
}

// Create records the caller's offer for a cleaning job.
func (h *OfferHandler) Create(c echo.Context) error {
	return h.withCleaning(c, func(c echo.Context, cleaningID int64) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}

		offer, err := h.offerUC.Create(c.Request().Context(), user, cleaningID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusCreated, toOfferResponse(offer))
	})
}

// List returns every offer for a cleaning job. Owner only.
func (h *OfferHandler) List(c echo.Context) error {
	return h.withCleaning(c, func(c echo.Context, cleaningID int64) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}

		offers, err := h.offerUC.List(c.Request().Context(), user, cleaningID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, mapSlice(offers, toOfferResponse))
	})
}

// Get returns the offer made by the user named in the path.
func (h *OfferHandler) Get(c echo.Context) error {
	return h.withCleaning(c, func(c echo.Context, cleaningID int64) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}

		offer, err := h.offerUC.Get(c.Request().Context(), user, cleaningID, c.Param("username"))
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toOfferResponse(offer))
	})
}

// Accept accepts the offer made by the user named in the path. Owner only.
func (h *OfferHandler) Accept(c echo.Context) error {
	return h.withCleaning(c, func(c echo.Context, cleaningID int64) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}

		offer, err := h.offerUC.Accept(c.Request().Context(), user, cleaningID, c.Param("username"))
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toOfferResponse(offer))
	})
}

// Cancel cancels the caller's own pending offer.
func (h *OfferHandler) Cancel(c echo.Context) error {
	return h.withCleaning(c, func(c echo.Context, cleaningID int64) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}

		offer, err := h.offerUC.Cancel(c.Request().Context(), user, cleaningID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toOfferResponse(offer))
	})
}

// Rescind withdraws the caller's own pending offer.
func (h *OfferHandler) Rescind(c echo.Context) error {
	return h.withCleaning(c, func(c echo.Context, cleaningID int64) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}

		if err := h.offerUC.Rescind(c.Request().Context(), user, cleaningID); err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, map[string]int64{"cleaning_id": cleaningID})
	})
}

func (h *OfferHandler) withCleaning(c echo.Context, fn func(c echo.Context, cleaningID int64) error) error {
	cleaningID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	return fn(c, cleaningID)
}
