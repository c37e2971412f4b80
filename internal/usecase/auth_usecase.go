package usecase

import (
	"context"

	"phresh/internal/domain/entity"
)

// AuthUsecase resolves the caller of a protected route from its Authorization header.
type AuthUsecase interface {
	// ResolveCurrentUser parses "<scheme> <token>", verifies the token and loads the active user it names.
	ResolveCurrentUser(ctx context.Context, rawHeader string) (*entity.User, error)
}
