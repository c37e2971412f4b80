package impl

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/fx"

	deliverycontext "phresh/internal/delivery/context"
	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
	"phresh/internal/domain/service"
	"phresh/internal/errors"
	"phresh/internal/usecase"
)

// timingPassword is hashed once and verified against when a login names an unknown email,
// so both failure paths cost one KDF evaluation.
const timingPassword = "phresh-login-timing"

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.CredentialHasher
	tokenService service.TokenService
	logger       *slog.Logger

	dummyOnce       sync.Once
	dummyCredential entity.Credential
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.CredentialHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the user and its default profile in one transaction and returns an access token.
// Taken emails and usernames are rejected before anything is written; a concurrent registration
// that slips past those checks is stopped by the unique constraints.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.String("username", input.Username))

	// Hash outside the transaction (the KDF is CPU-bound).
	credential, err := srv.hasher.Generate(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to generate credential during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, err.Error())
	}

	var registered *entity.User
	var accessToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := ensureAvailable(ctx, userRepo.FindByEmail, input.Email, domainerrors.ErrEmailTaken); err != nil {
			return err
		}
		if err := ensureAvailable(ctx, userRepo.FindByUsername, input.Username, domainerrors.ErrUsernameTaken); err != nil {
			return err
		}

		newUser := &entity.User{
			Username:   input.Username,
			Email:      input.Email,
			IsActive:   true,
			Credential: credential,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(translateRepoError(err), "failed to create user during registration")
		}

		profile := &entity.Profile{UserID: newUser.ID, Username: newUser.Username, Email: newUser.Email}
		if err := repoFactory.ProfileRepo().Create(ctx, profile); err != nil {
			return errors.Wrap(translateRepoError(err), "failed to create profile during registration")
		}
		newUser.Profile = profile

		// Issuing inside the transaction keeps registration all-or-nothing.
		token, err := srv.tokenService.Issue(newUser.Principal())
		if err != nil {
			return errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
		}

		registered = newUser
		accessToken = token

		return nil
	})
	if err != nil {
		err = translateRepoError(err)
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", registered.ID))

	return &usecase.RegisterOutput{
		User:        registered,
		AccessToken: accessToken,
		TokenType:   usecase.TokenTypeBearer,
	}, nil
}

// ensureAvailable returns taken when find locates a user, nil when it reports not found.
func ensureAvailable(ctx context.Context, find func(context.Context, string) (*entity.User, error), value string, taken error) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		return errors.Wrap(err, "failed to check user uniqueness")
	}
}

// Login verifies an email and password pair and issues an access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.equalizeTiming(input.Password)
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("reason", "unknown email"))

			return nil, errors.Wrap(domainerrors.ErrAuthenticationFailed, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if err := srv.verifyPassword(ctx, user, input.Password); err != nil {
		return nil, err
	}

	if !user.IsActive {
		srv.log(ctx).Warn("Login failed", slog.Int64("userID", user.ID), slog.String("reason", "inactive user"))

		return nil, errors.Wrap(domainerrors.ErrInactiveUser, "login failed")
	}

	accessToken, err := srv.tokenService.Issue(user.Principal())
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Int64("userID", user.ID))

	return &usecase.LoginOutput{
		User:        user,
		AccessToken: accessToken,
		TokenType:   usecase.TokenTypeBearer,
	}, nil
}

// ChangePassword replaces the user's credential wholesale after checking the current password.
func (srv *userService) ChangePassword(ctx context.Context, user *entity.User, input *usecase.ChangePasswordInput) error {
	if err := srv.verifyPassword(ctx, user, input.CurrentPassword); err != nil {
		return err
	}

	credential, err := srv.hasher.Generate(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
	}
	patch := entity.UserPatch{Credential: &credential}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		current, err := userRepo.FindByID(ctx, user.ID)
		if err != nil {
			return errors.Wrap(translateRepoError(err), "failed to load user for password change")
		}

		patch.Apply(current)
		if err := userRepo.Update(ctx, current); err != nil {
			return errors.Wrap(translateRepoError(err), "failed to update credential")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute password change transaction")
	}

	patch.Apply(user)
	srv.log(ctx).Info("Password changed", slog.Int64("userID", user.ID))

	return nil
}

// verifyPassword checks plaintext against the stored credential.
// A corrupt credential is logged and reported as an internal error.
func (srv *userService) verifyPassword(ctx context.Context, user *entity.User, plaintext string) error {
	ok, err := srv.hasher.Verify(plaintext, user.Credential)
	if err != nil {
		srv.log(ctx).Error("Stored credential is corrupt", slog.Int64("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrCorruptCredential, err.Error())
	}
	if !ok {
		srv.log(ctx).Warn("Login failed", slog.Int64("userID", user.ID), slog.String("reason", "password mismatch"))

		return errors.Wrap(domainerrors.ErrAuthenticationFailed, "password mismatch")
	}

	return nil
}

func (srv *userService) equalizeTiming(plaintext string) {
	srv.dummyOnce.Do(func() {
		credential, err := srv.hasher.Generate(timingPassword)
		if err == nil {
			srv.dummyCredential = credential
		}
	})
	if srv.dummyCredential.IsZero() {
		return
	}

	_, _ = srv.hasher.Verify(plaintext, srv.dummyCredential)
}
