package middleware

import (
	"github.com/labstack/echo/v4"

	deliverycontext "phresh/internal/delivery/context"
	"phresh/internal/usecase"
)

// AuthMiddleware resolves the current user of protected routes.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate rejects the request unless its Authorization header names an active user.
// On success the user is available through deliverycontext.GetCurrentUser.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.authUC.ResolveCurrentUser(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}

		deliverycontext.SetCurrentUser(c, user)

		return next(c)
	}
}
