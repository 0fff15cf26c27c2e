package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/session"
	"github.com/yigit/placementportal/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	gateKey        = "sessionGate"
	accessTokenKey = "accessToken"
)

// AuthMiddleware resolves the session gate of each request
type AuthMiddleware struct {
	prober session.UserProber
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(prober session.UserProber) *AuthMiddleware {
	return &AuthMiddleware{prober: prober}
}

// requestToken reads the access token from the Authorization header, falling
// back to query parameters for Swagger UI
func requestToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		for _, key := range []string{"authorization", "Authorization", "token"} {
			if queryToken := c.Query(key); queryToken != "" {
				authHeader = queryToken
				break
			}
		}
	}

	token, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return ""
	}
	return token
}

// JWTAuth probes the identity behind the request token and stores the
// resulting gate in the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)

		gate, err := session.Probe(c.Request.Context(), m.prober, token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(gateKey, gate)
		c.Set(accessTokenKey, token)
		c.Next()
	}
}

// RoleRequired refuses requests whose gate does not carry one of roles.
// JWTAuth must run first.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := GetGate(c).Require(roles...); err != nil {
			HandleAPIError(c, err)
			return
		}
		c.Next()
	}
}

// GetGate returns the gate stored by JWTAuth, or an unauthenticated one
func GetGate(c *gin.Context) *session.Gate {
	if value, ok := c.Get(gateKey); ok {
		if gate, ok := value.(*session.Gate); ok {
			return gate
		}
	}
	return session.NewGate()
}

// GetAccessToken returns the token JWTAuth authenticated
func GetAccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}

// CurrentUSN returns the signed-in student's USN
func CurrentUSN(c *gin.Context) string {
	state := GetGate(c).Snapshot()
	if state.Status != session.StatusAuthenticated || state.Role != models.RoleStudent {
		return ""
	}
	return state.Data
}

// CurrentEmployerID returns the signed-in employer's id, or 0
func CurrentEmployerID(c *gin.Context) int64 {
	state := GetGate(c).Snapshot()
	if state.Status != session.StatusAuthenticated || state.Role != models.RoleEmployer {
		return 0
	}
	id, err := strconv.ParseInt(state.Data, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
