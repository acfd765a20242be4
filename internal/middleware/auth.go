package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"taskhub/internal/domain"
	jwtsvc "taskhub/internal/pkg/jwt"
	"taskhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type tokenVerifier interface {
	Verify(token string) (*jwtsvc.Claims, error)
}

type blacklistChecker interface {
	Exists(ctx context.Context, token string) (bool, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth guards every route it is installed on. Public routes simply live
// outside the guarded group; the split is the route table built in main.
//
// Per request: extract the bearer token, check the blacklist, verify
// signature and expiry, resolve the user, then expose {user_id, email} to
// downstream handlers. Expired and malformed tokens answer with the same
// message but are logged under distinct reason codes.
func Auth(verifier tokenVerifier, blacklist blacklistChecker, users userGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearer(c.GetHeader("Authorization"))
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "Authentication token is required")
			return
		}

		revoked, err := blacklist.Exists(c.Request.Context(), token)
		if err != nil {
			log.Printf("auth_reject reason=blacklist_lookup_failed path=%s error=%q", c.Request.URL.Path, err)
			response.AbortError(c, http.StatusInternalServerError, "Authentication failed")
			return
		}
		if revoked {
			response.AbortError(c, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			reason := "token_malformed"
			if err == jwtsvc.ErrExpired {
				reason = "token_expired"
			}
			log.Printf("auth_reject reason=%s path=%s client_ip=%s", reason, c.Request.URL.Path, c.ClientIP())
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if claims.Subject == "" {
			response.AbortError(c, http.StatusUnauthorized, "Invalid token payload")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// Token signed for an account that no longer exists.
				response.AbortError(c, http.StatusUnauthorized, "User not found")
				return
			}
			log.Printf("auth_reject reason=user_lookup_failed path=%s error=%q", c.Request.URL.Path, err)
			response.AbortError(c, http.StatusInternalServerError, "Authentication failed")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("email", user.Email)

		c.Next()
	}
}

func extractBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
