package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-surgical-scheduling/pkg/authctx"
	"go-surgical-scheduling/pkg/jwt"
	"go-surgical-scheduling/pkg/response"

	"github.com/redis/go-redis/v9"
)

// AuthMiddleware verifies bearer tokens minted by the external auth service.
// Token issuance and session management live there; this service only
// checks signature, expiry, token type and the Redis revocation denylist.
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

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Revoked tokens are listed in Redis by the auth service.
		revokedKey := fmt.Sprintf("revoked_token:%s:%s", claims.UserID.String(), claims.TokenID)
		revoked, err := m.redisClient.Exists(r.Context(), revokedKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if revoked > 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := authctx.WithUser(r.Context(), claims.UserID, claims.Email, claims.RoleID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
