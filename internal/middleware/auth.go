package middleware

import (
	"net/http"
	"strings"

	"delit-api/internal/token"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Route identifies a route by method and gin route template.
type Route struct {
	Method string
	Path   string
}

// Session gates every route that is not in the public allow-list behind a
// valid bearer access token.
type Session struct {
	issuer *token.Issuer
	public map[Route]struct{}
}

func NewSession(issuer *token.Issuer, public []Route) *Session {
	s := &Session{issuer: issuer, public: make(map[Route]struct{}, len(public))}
	for _, r := range public {
		s.public[r] = struct{}{}
	}
	return s
}

// IsPublic reports whether method and route template are on the allow-list.
func (s *Session) IsPublic(method, path string) bool {
	_, ok := s.public[Route{Method: method, Path: path}]
	return ok
}

// Handler validates the JWT access token from the Authorization header.
// Unmatched routes are passed through so the router can answer 404.
func (s *Session) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" || c.Request.Method == http.MethodOptions || s.IsPublic(c.Request.Method, path) {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		raw, ok := BearerToken(authHeader)
		if !ok {
			utils.ErrorResponse(c, http.StatusForbidden, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}

		claims, err := s.issuer.VerifyAccessToken(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Inject claims into context
		c.Set("username", claims.Subject)
		c.Set("claims", claims)
		c.Request = c.Request.WithContext(token.WithClaims(c.Request.Context(), claims))

		c.Next()
	}
}

// BearerToken extracts the token of a "Bearer <token>" header value. The
// scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
