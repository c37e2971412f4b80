package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phresh/config"
	apimiddleware "phresh/internal/delivery/api/middleware"
	"phresh/internal/delivery/api/router"
	"phresh/internal/delivery/api/router/handler"
	"phresh/internal/infra/auth"
	"phresh/internal/infra/persistence/memory"
	"phresh/internal/usecase/impl"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.TestRoutes = &config.TestRoutesConfig{Enabled: true}
	cfg.Auth = &config.AuthConfig{
		TokenAudience: "phresh:auth",
		TokenTTL:      time.Hour,
		HeaderScheme:  "Bearer",
		Argon2:        &config.Argon2Config{Time: 1, Memory: 1024, Threads: 1},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.NewStore()
	txManager := memory.NewTransactionManager(store)
	userRepo := memory.NewUserRepository(store)
	cleaningRepo := memory.NewCleaningRepository(store)

	tokens, err := auth.NewTokenService(auth.TokenConfig{SecretKey: "test-secret", Audience: "phresh:auth", TTL: time.Hour})
	require.NoError(t, err)

	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager: txManager, UserRepo: userRepo, Hasher: auth.NewArgon2Hasher(cfg.Auth.Argon2), TokenService: tokens, Logger: logger,
	})
	authUC := impl.NewAuthService(impl.AuthServiceParams{UserRepo: userRepo, TokenService: tokens, Config: cfg, Logger: logger})
	profileUC := impl.NewProfileService(impl.ProfileServiceParams{ProfileRepo: memory.NewProfileRepository(store), Logger: logger})
	cleaningUC := impl.NewCleaningService(impl.CleaningServiceParams{TxManager: txManager, CleaningRepo: cleaningRepo, Logger: logger})
	offerUC := impl.NewOfferService(impl.OfferServiceParams{
		TxManager: txManager, UserRepo: userRepo, CleaningRepo: cleaningRepo, OfferRepo: memory.NewOfferRepository(store), Logger: logger,
	})

	return NewEcho(cfg, logger, router.RouterParams{
		UserHandler:     handler.NewUserHandler(handler.UserHandlerParams{UserUC: userUC, Logger: logger}),
		ProfileHandler:  handler.NewProfileHandler(handler.ProfileHandlerParams{ProfileUC: profileUC}),
		CleaningHandler: handler.NewCleaningHandler(handler.CleaningHandlerParams{CleaningUC: cleaningUC}),
		OfferHandler:    handler.NewOfferHandler(handler.OfferHandlerParams{OfferUC: offerUC}),
		TestHandler:     handler.NewTestHandler(),
		AuthMiddleware:  apimiddleware.NewAuthMiddleware(authUC),
		Config:          cfg,
	})
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

type client struct {
	t *testing.T
	e *echo.Echo
}

func (cl client) do(method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	cl.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(cl.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

func (cl client) register(email, username string) (token string, userID int64) {
	cl.t.Helper()

	rec, env := cl.do(http.MethodPost, "/api/users", "", `{"email":"`+email+`","username":"`+username+`","password":"password1"}`)
	require.Equal(cl.t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		ID          int64 `json:"id"`
		AccessToken struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"access_token"`
	}
	require.NoError(cl.t, json.Unmarshal(env.Data, &out))
	require.Equal(cl.t, "bearer", out.AccessToken.TokenType)

	return out.AccessToken.AccessToken, out.ID
}

func (cl client) createCleaning(token string) int64 {
	cl.t.Helper()

	rec, env := cl.do(http.MethodPost, "/api/cleanings", token, `{"name":"My House","description":"two floors","price":29.99}`)
	require.Equal(cl.t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		ID           int64  `json:"id"`
		CleaningType string `json:"cleaning_type"`
	}
	require.NoError(cl.t, json.Unmarshal(env.Data, &out))
	require.Equal(cl.t, "spot_clean", out.CleaningType)

	return out.ID
}

func TestAPI_Health(t *testing.T) {
	cl := client{t: t, e: newTestEcho(t)}

	rec, _ := cl.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAPI_Registration(t *testing.T) {
	cl := client{t: t, e: newTestEcho(t)}
	cl.register("a@b.io", "abc")

	rec, env := cl.do(http.MethodPost, "/api/users", "", `{"email":"a@b.io","username":"other","password":"password1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMAIL_TAKEN", env.Error.Code)

	rec, env = cl.do(http.MethodPost, "/api/users", "", `{"email":"c@d.io","username":"abc","password":"password1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USERNAME_TAKEN", env.Error.Code)

	rec, env = cl.do(http.MethodPost, "/api/users", "", `{"email":"c@d.io","username":"a!","password":"short"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.NotNil(t, env.Error.Details)
}

func TestAPI_LoginWithForm(t *testing.T) {
	e := newTestEcho(t)
	cl := client{t: t, e: e}
	cl.register("a@b.io", "abc")

	login := func(password string) *httptest.ResponseRecorder {
		form := url.Values{"username": {"a@b.io"}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/api/users/login/token", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		return rec
	}

	rec := login("password1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &token))
	assert.Equal(t, "bearer", token.TokenType)

	meRec, _ := cl.do(http.MethodGet, "/api/users/me", token.AccessToken, "")
	assert.Equal(t, http.StatusOK, meRec.Code)

	rec = login("password2")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	var failed envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failed))

	// A wrong password and a forged token look the same to the client.
	_, forged := cl.do(http.MethodGet, "/api/users/me", "forged", "")
	require.NotNil(t, failed.Error)
	require.NotNil(t, forged.Error)
	assert.Equal(t, "AUTHENTICATION_FAILED", failed.Error.Code)
	assert.Equal(t, forged.Error.Code, failed.Error.Code)
	assert.Equal(t, forged.Error.Message, failed.Error.Message)
}

func TestAPI_Authentication(t *testing.T) {
	cl := client{t: t, e: newTestEcho(t)}
	token, userID := cl.register("a@b.io", "abc")

	rec, env := cl.do(http.MethodGet, "/api/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTHENTICATION_FAILED", env.Error.Code)
	missing := env.Error.Message

	rec, env = cl.do(http.MethodGet, "/api/users/me", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTHENTICATION_FAILED", env.Error.Code)
	assert.Equal(t, missing, env.Error.Message)
	assert.Nil(t, env.Error.Details)

	rec, env = cl.do(http.MethodGet, "/test/auth", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		UserID   int64  `json:"userID"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, userID, out.UserID)
	assert.Equal(t, "abc", out.Username)
}

func TestAPI_CleaningAuthorization(t *testing.T) {
	cl := client{t: t, e: newTestEcho(t)}
	ownerToken, _ := cl.register("a@b.io", "abc")
	otherToken, _ := cl.register("c@d.io", "cde")
	id := cl.createCleaning(ownerToken)
	path := "/api/cleanings/" + strconv.FormatInt(id, 10)

	rec, _ := cl.do(http.MethodGet, path, otherToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := cl.do(http.MethodPut, path, otherToken, `{"price":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, env = cl.do(http.MethodPut, "/api/cleanings/999", ownerToken, `{"price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CLEANING_NOT_FOUND", env.Error.Code)

	rec, env = cl.do(http.MethodGet, "/api/cleanings/0", ownerToken, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	rec, env = cl.do(http.MethodPut, path, ownerToken, `{"cleaning_type":null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_CLEANING_TYPE", env.Error.Code)

	rec, _ = cl.do(http.MethodPut, path, ownerToken, `{"cleaning_type":"full_clean","price":35}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = cl.do(http.MethodGet, "/api/cleanings", otherToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	rec, _ = cl.do(http.MethodDelete, path, otherToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = cl.do(http.MethodDelete, path, ownerToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_OfferLifecycle(t *testing.T) {
	cl := client{t: t, e: newTestEcho(t)}
	ownerToken, _ := cl.register("owner@b.io", "owner")
	cleanerToken, _ := cl.register("cleaner@b.io", "cleaner")
	rivalToken, _ := cl.register("rival@b.io", "rival")
	offers := "/api/cleanings/" + strconv.FormatInt(cl.createCleaning(ownerToken), 10) + "/offers"

	rec, env := cl.do(http.MethodPost, offers, ownerToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "SELF_OFFER_NOT_ALLOWED", env.Error.Code)

	rec, _ = cl.do(http.MethodPost, offers, cleanerToken, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = cl.do(http.MethodPost, offers, cleanerToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DUPLICATE_OFFER", env.Error.Code)

	rec, _ = cl.do(http.MethodPost, offers, rivalToken, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = cl.do(http.MethodGet, offers, cleanerToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = cl.do(http.MethodPut, offers+"/cleaner", cleanerToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = cl.do(http.MethodPut, offers+"/cleaner", ownerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var accepted struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &accepted))
	assert.Equal(t, "accepted", accepted.Status)

	rec, env = cl.do(http.MethodGet, offers+"/rival", rivalToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rival struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rival))
	assert.Equal(t, "rejected", rival.Status)

	rec, env = cl.do(http.MethodDelete, offers, rivalToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "OFFER_NOT_PENDING", env.Error.Code)
}

func TestAPI_Profiles(t *testing.T) {
	cl := client{t: t, e: newTestEcho(t)}
	token, _ := cl.register("a@b.io", "abc")

	rec, _ := cl.do(http.MethodPut, "/api/profiles/me", token, `{"full_name":"A. B. Cee"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := cl.do(http.MethodGet, "/api/profiles/abc", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		FullName string `json:"full_name"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "A. B. Cee", profile.FullName)
	assert.Equal(t, "abc", profile.Username)

	rec, env = cl.do(http.MethodGet, "/api/profiles/ghost", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROFILE_NOT_FOUND", env.Error.Code)
}
