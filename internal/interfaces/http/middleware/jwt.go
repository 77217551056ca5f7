package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/infrastructure/auth"
	"github.com/swiftsupply/backend/internal/infrastructure/logger"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// DefaultAccessCookie is the cookie carrying the access token
const DefaultAccessCookie = "SWF_ACC"

var errMissingToken = errors.New("missing token")

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// CookieName is the access token cookie read when no Authorization header is sent
	CookieName string
	// Logger for middleware logging
	Logger *zap.Logger
}

// JWTAuthMiddleware rejects requests without a valid, unrevoked access token.
// The token is read from the Authorization header, falling back to the access cookie.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	cfg = withDefaults(cfg)
	return func(c *gin.Context) {
		token := ExtractToken(c, cfg.CookieName)
		if token == "" {
			abortUnauthorized(c, cfg, errMissingToken)
			return
		}

		claims, err := authenticate(c, cfg, token)
		if err != nil {
			abortUnauthorized(c, cfg, err)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuthMiddleware extracts claims when a valid token is present and
// otherwise lets the request through anonymously
func OptionalJWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	cfg = withDefaults(cfg)
	return func(c *gin.Context) {
		token := ExtractToken(c, cfg.CookieName)
		if token != "" {
			if claims, err := authenticate(c, cfg, token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole allows only authenticated users with one of the given roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(strings.ToUpper(GetJWTRole(c)))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeForbidden, "Access to this resource is forbidden", getRequestID(c),
		))
	}
}

// ExtractToken returns the bearer token of the request, or the access cookie value
func ExtractToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader(AuthHeaderKey); strings.HasPrefix(header, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	}
	if cookieName == "" {
		return ""
	}
	if value, err := c.Cookie(cookieName); err == nil {
		return value
	}
	return ""
}

func withDefaults(cfg JWTMiddlewareConfig) JWTMiddlewareConfig {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultAccessCookie
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

func authenticate(c *gin.Context, cfg JWTMiddlewareConfig, token string) (*auth.Claims, error) {
	claims, err := cfg.JWTService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	if cfg.TokenBlacklist != nil && claims.ID != "" {
		revoked, err := cfg.TokenBlacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// fail open: a blacklist outage must not lock every user out
			cfg.Logger.Error("Failed to check token blacklist",
				zap.String("jti", claims.ID),
				zap.Error(err))
		} else if revoked {
			return nil, auth.ErrTokenBlacklisted
		}
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTRoleKey, claims.Role)
	c.Set(logger.GinUserIDKey, claims.UserID)

	ctx := c.Request.Context()
	ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error) {
	cfg.Logger.Debug("JWT authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)

	code, msg := dto.ErrCodeTokenInvalid, "Invalid token"
	switch {
	case errors.Is(err, errMissingToken):
		code, msg = dto.ErrCodeUnauthorized, "Authentication required"
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		msg = "Token has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, msg, getRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTUserUUID parses the authenticated user ID; ok is false for anonymous requests
func GetJWTUserUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(GetJWTUserID(c))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetJWTRole retrieves the role from JWT claims in context
func GetJWTRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}
