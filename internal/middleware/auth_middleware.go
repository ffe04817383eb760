package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"matchday-backend-go/internal/models"
)

// IdentityContextKey is where the decoded caller identity lives in the gin
// context for downstream handlers.
const IdentityContextKey = "identity"

// errorBody mirrors the api package's ErrorResponse; defined locally to avoid
// an import cycle with internal/api.
type errorBody struct {
	Error string `json:"error"`
}

// AuthMiddleware verifies Firebase ID tokens and decodes role/status custom
// claims into an explicit models.Identity.
type AuthMiddleware struct {
	authClient *auth.Client
}

// NewAuthMiddleware creates an AuthMiddleware. A nil auth client is a setup
// error; the application cannot secure any route without it.
func NewAuthMiddleware(authClient *auth.Client) *AuthMiddleware {
	if authClient == nil {
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{authClient: authClient}
}

// VerifyToken authenticates the request. On success the decoded identity is
// stored in the context; otherwise the request is aborted with 401.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "Authorization header is required"})
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := m.authClient.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set(IdentityContextKey, identityFromToken(token))
		c.Next()
	}
}

// identityFromToken builds the explicit identity from the verified token's
// standard and custom claims. Missing claims simply leave zero values; the
// authorization layer rejects unapproved or roleless callers.
func identityFromToken(token *auth.Token) models.Identity {
	identity := models.Identity{UID: token.UID}

	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = strings.ToLower(email)
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if status, ok := token.Claims["userStatus"].(string); ok {
		identity.Status = models.UserStatus(status)
	}
	if rawRoles, ok := token.Claims["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			if role, ok := raw.(string); ok {
				identity.Roles = append(identity.Roles, models.Role(role))
			}
		}
	}
	return identity
}
