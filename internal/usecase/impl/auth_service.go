package impl

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"phresh/config"
	deliverycontext "phresh/internal/delivery/context"
	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
	"phresh/internal/domain/service"
	"phresh/internal/errors"
	"phresh/internal/usecase"
)

// authService implements the AuthUsecase interface. It only ever handles verified tokens, never passwords.
type authService struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
	scheme       string
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	scheme := "Bearer"
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.HeaderScheme != "" {
		scheme = params.Config.Auth.HeaderScheme
	}

	return &authService{
		userRepo:     params.UserRepo,
		tokenService: params.TokenService,
		scheme:       scheme,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveCurrentUser authenticates the caller of a protected route.
// Every non-inactive failure renders the same 401; the specific kind is only logged.
func (srv *authService) ResolveCurrentUser(ctx context.Context, rawHeader string) (*entity.User, error) {
	token, err := srv.extractToken(rawHeader)
	if err != nil {
		srv.log(ctx).Warn("Authorization header rejected", slog.Any("error", err))

		return nil, err
	}

	principal, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Warn("Token verification failed", slog.String("reason", err.Error()))

		return nil, domainerrors.ErrUnauthenticated
	}

	user, err := srv.userRepo.FindByUsername(ctx, principal.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Token subject does not resolve to a user", slog.String("username", principal.Username))

			return nil, domainerrors.ErrUnauthenticated
		}

		// Lookup failures are surfaced immediately, never retried.
		return nil, errors.Wrap(err, "failed to load current user")
	}

	if !user.IsActive {
		srv.log(ctx).Warn("Inactive user attempted to authenticate", slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrInactiveUser
	}

	return user, nil
}

// extractToken splits "<scheme> <token>". The scheme is matched case-insensitively.
func (srv *authService) extractToken(rawHeader string) (string, error) {
	header := strings.TrimSpace(rawHeader)
	if header == "" {
		return "", domainerrors.ErrMissingCredential.WrapMessage("authorization header is empty")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, srv.scheme) {
		return "", domainerrors.ErrMalformedHeader.WrapMessage("unexpected authorization scheme")
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", domainerrors.ErrMalformedHeader.WrapMessage("token is empty or has extra segments")
	}

	return token, nil
}
