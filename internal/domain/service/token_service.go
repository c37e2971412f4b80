package service

import (
	"errors"

	"phresh/internal/domain/entity"
)

// Token verification failures. They stay distinct here and are collapsed by the caller.
var (
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenAudienceMismatch = errors.New("token audience mismatch")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenMalformed        = errors.New("token payload is malformed")
	ErrInvalidPrincipal      = errors.New("principal has no stable identity")
)

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue signs a token whose subject is the principal's username.
	Issue(principal entity.Principal) (string, error)

	// Verify checks signature, audience and expiry and returns the embedded principal.
	Verify(token string) (entity.Principal, error)
}
