package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mokshamaa/internal/domain"
)

const userContextKey = "user"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin verifies credentials and returns a bearer token.
// POST /auth/login
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	result, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleMe returns the authenticated user.
// GET /auth/me
func (s *Server) handleMe(c *gin.Context) {
	user, ok := c.Get(userContextKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user.(*domain.User))
}

// requireStaff authenticates the bearer token and requires a staff or admin
// account. The user lands in the gin context for downstream handlers.
func (s *Server) requireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		user, err := s.auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// handleHealth reports liveness.
// GET /healthz
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, s.health.Check(c.Request.Context()))
}
