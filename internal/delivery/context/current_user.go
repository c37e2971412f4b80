package context

import (
	"github.com/labstack/echo/v4"

	"phresh/internal/domain/entity"
)

// SetCurrentUser stores the user resolved by the auth middleware.
func SetCurrentUser(c echo.Context, user *entity.User) {
	c.Set(string(keyCurrentUser), user)
}

// GetCurrentUser returns the authenticated user, if the auth middleware ran.
func GetCurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(keyCurrentUser)).(*entity.User)
	return user, ok && user != nil
}
