package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"phresh/config"
	"phresh/internal/infra/auth"
	"phresh/internal/infra/persistence/memory"
	"phresh/internal/usecase"
)

const testSecret = "test-secret-key"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			TokenAudience: "phresh:auth",
			TokenTTL:      time.Hour,
			HeaderScheme:  "Bearer",
			HashAlgorithm: config.HashAlgorithmArgon2id,
			Argon2:        &config.Argon2Config{Time: 1, Memory: 1024, Threads: 1},
		},
	}
}

// scenario wires every usecase against one in-memory store with real, cheap hashing and tokens.
type scenario struct {
	store     *memory.Store
	users     usecase.UserUsecase
	auth      usecase.AuthUsecase
	profiles  usecase.ProfileUsecase
	cleanings usecase.CleaningUsecase
	offers    usecase.OfferUsecase
}

func newScenario(t *testing.T) *scenario {
	t.Helper()

	cfg := newTestConfig()
	logger := newDiscardLogger()
	store := memory.NewStore()
	txManager := memory.NewTransactionManager(store)
	userRepo := memory.NewUserRepository(store)
	cleaningRepo := memory.NewCleaningRepository(store)

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		SecretKey: testSecret,
		Audience:  cfg.Auth.TokenAudience,
		TTL:       cfg.Auth.TokenTTL,
	})
	require.NoError(t, err)

	return &scenario{
		store: store,
		users: NewUserService(UserServiceParams{
			TxManager:    txManager,
			UserRepo:     userRepo,
			Hasher:       auth.NewArgon2Hasher(cfg.Auth.Argon2),
			TokenService: tokens,
			Logger:       logger,
		}),
		auth: NewAuthService(AuthServiceParams{
			UserRepo:     userRepo,
			TokenService: tokens,
			Config:       cfg,
			Logger:       logger,
		}),
		profiles: NewProfileService(ProfileServiceParams{
			ProfileRepo: memory.NewProfileRepository(store),
			Logger:      logger,
		}),
		cleanings: NewCleaningService(CleaningServiceParams{
			TxManager:    txManager,
			CleaningRepo: cleaningRepo,
			Logger:       logger,
		}),
		offers: NewOfferService(OfferServiceParams{
			TxManager:    txManager,
			UserRepo:     userRepo,
			CleaningRepo: cleaningRepo,
			OfferRepo:    memory.NewOfferRepository(store),
			Logger:       logger,
		}),
	}
}

func (s *scenario) register(t *testing.T, email, username, password string) *usecase.RegisterOutput {
	t.Helper()

	out, err := s.users.Register(context.Background(), &usecase.RegisterInput{
		Email:    email,
		Username: username,
		Password: password,
	})
	require.NoError(t, err)

	return out
}
