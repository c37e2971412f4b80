package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	deliverycontext "phresh/internal/delivery/context"
	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
)

// bindAndValidate binds the request into req and runs its validate tags.
// Both failures are rendered by the HTTP error handler.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	return c.Validate(req)
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + " must be a positive integer")
	}

	return id, nil
}

// currentUser returns the user resolved by the auth middleware.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return nil, domainerrors.ErrUnauthenticated
	}

	return user, nil
}
