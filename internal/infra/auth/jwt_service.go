package auth

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"phresh/config"
	"phresh/internal/domain/entity"
	"phresh/internal/domain/service"
	"phresh/internal/errors"
)

const tokenIssuer = "phresh.io"

// TokenConfig carries everything the token service needs. It is passed explicitly at construction.
type TokenConfig struct {
	SecretKey string           // Process-wide HMAC key.
	Audience  string           // Expected and issued "aud" claim.
	TTL       time.Duration    // Validity window from issuance.
	Now       func() time.Time // Clock; defaults to time.Now.
}

// tokenClaims is the JWT payload. The subject and username claims both carry the principal's username.
type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret   []byte
	audience string
	ttl      time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

// NewJWTService builds the token service from the application config.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil {
		return nil, errors.New("auth configuration must be provided")
	}

	return NewTokenService(TokenConfig{
		SecretKey: cfg.SecretKey.Access,
		Audience:  cfg.Auth.TokenAudience,
		TTL:       cfg.Auth.TokenTTL,
	})
}

// NewTokenService is the constructor for jwtService.
func NewTokenService(tc TokenConfig) (service.TokenService, error) {
	if tc.SecretKey == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if tc.Audience == "" {
		return nil, errors.New("token audience must be provided")
	}
	if tc.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if tc.Now == nil {
		tc.Now = time.Now
	}

	s := &jwtService{
		secret:   []byte(tc.SecretKey),
		audience: tc.Audience,
		ttl:      tc.TTL,
		now:      tc.Now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(tc.Audience),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.Now),
	)

	return s, nil
}

// Issue signs an access token for the principal.
// The output depends only on the principal, the config and the current time.
func (s *jwtService) Issue(principal entity.Principal) (string, error) {
	if !principal.IsValid() {
		return "", service.ErrInvalidPrincipal
	}

	now := s.now()
	claims := tokenClaims{
		Username: principal.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   principal.Username,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify checks the token and returns its principal.
// Failures are reported in order: signature, audience, expiry, payload shape.
func (s *jwtService) Verify(tokenString string) (entity.Principal, error) {
	if err := s.verifySignature(tokenString); err != nil {
		return entity.Principal{}, err
	}

	claims := &tokenClaims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return entity.Principal{}, classifyTokenError(err)
	}

	principal := entity.Principal{Username: claims.Username}
	if !principal.IsValid() || claims.Subject != claims.Username {
		return entity.Principal{}, service.ErrTokenMalformed
	}

	return principal, nil
}

// verifySignature recomputes the HMAC over the raw header and payload segments before
// anything in the payload is decoded, so a tampered payload is always a signature failure.
func (s *jwtService) verifySignature(tokenString string) error {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return service.ErrTokenMalformed
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return service.ErrTokenSignatureInvalid
	}

	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, s.secret); err != nil {
		return service.ErrTokenSignatureInvalid
	}

	return nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return service.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return service.ErrTokenAudienceMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.ErrTokenExpired
	default:
		return service.ErrTokenMalformed
	}
}
