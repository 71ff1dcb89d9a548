package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"medibook-api/internal/domain/access"
	"medibook-api/internal/domain/entity"
	"medibook-api/pkg/jwt"
	"medibook-api/pkg/response"

	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	SessionKey contextKey = "session"
	TokenIDKey contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

// Authenticate validates the bearer token and, on success, stores a fully
// populated Session in the request context. The session is built in one
// place from signed claims, never assembled piecemeal downstream.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.UnauthorizedRedirect(w, "Authorization header is required", access.RouteLogin)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.UnauthorizedRedirect(w, "Invalid authorization header format", access.RouteLogin)
			return
		}

		tokenString := parts[1]

		// Validate JWT token
		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			response.UnauthorizedRedirect(w, "Invalid or expired token", access.RouteLogin)
			return
		}

		// Check if it's an access token
		if claims.TokenType != jwt.AccessToken {
			response.UnauthorizedRedirect(w, "Invalid token type", access.RouteLogin)
			return
		}

		// Check if token exists in Redis (not revoked)
		tokenKey := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), claims.TokenID)
		exists, err := m.redisClient.Exists(r.Context(), tokenKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if exists == 0 {
			response.UnauthorizedRedirect(w, "Token has been revoked", access.RouteLogin)
			return
		}

		session := &entity.Session{
			UserID:   claims.UserID,
			Email:    claims.Email,
			FullName: claims.FullName,
			RoleID:   claims.RoleID,
		}

		ctx := context.WithValue(r.Context(), SessionKey, session)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext extracts the authenticated session from context.
// Returns nil when the request never passed Authenticate.
func GetSessionFromContext(ctx context.Context) *entity.Session {
	session, ok := ctx.Value(SessionKey).(*entity.Session)
	if !ok {
		return nil
	}
	return session
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
