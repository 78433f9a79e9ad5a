package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mokshamaa/internal/config"
	"mokshamaa/internal/metrics"
	"mokshamaa/internal/services"
)

// Server bundles the services behind the HTTP surface.
type Server struct {
	cfg     *config.Config
	inquiry *services.InquiryService
	auth    *services.AuthService
	health  *services.HealthService
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, inquiry *services.InquiryService, auth *services.AuthService, health *services.HealthService) *Server {
	return &Server{cfg: cfg, inquiry: inquiry, auth: auth, health: health}
}

// Router builds the gin engine with all routes and middleware mounted.
// Inquiry submission is public; listing and triage require a staff token.
func (s *Server) Router() *gin.Engine {
	if !s.cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogging())
	r.Use(metrics.Middleware())
	r.Use(securityHeaders(s.cfg))
	r.Use(corsMiddleware(s.cfg))

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/login", s.handleLogin)
	r.GET("/auth/me", s.requireStaff(), s.handleMe)

	r.POST("/inquiries", s.handleCreateInquiry)

	admin := r.Group("/inquiries")
	admin.Use(s.requireStaff())
	{
		admin.GET("", s.handleListInquiries)
		admin.GET("/:id", s.handleGetInquiry)
		admin.PATCH("/:id", s.handleUpdateInquiry)
	}

	return r
}

// securityHeaders adds security headers to responses
func securityHeaders(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Header("Server", "")

		// HSTS only in production over TLS
		if !cfg.App.Debug && c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// corsMiddleware configures CORS based on environment
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// In production, validate against allowed origins
		if !cfg.App.Debug && len(cfg.CORS.AllowedOrigins) > 0 && cfg.CORS.AllowedOrigins[0] != "*" {
			allowed := false
			for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}
			if !allowed && origin != "" {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
		} else if cfg.App.Debug {
			c.Header("Access-Control-Allow-Origin", "*")
		}

		c.Header("Access-Control-Allow-Methods", strings.Join(cfg.CORS.AllowedMethods, ", "))
		c.Header("Access-Control-Allow-Headers", strings.Join(cfg.CORS.AllowedHeaders, ", "))
		c.Header("Access-Control-Expose-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Max-Age", fmt.Sprintf("%d", cfg.CORS.MaxAge))
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// requestLogging logs all incoming requests and their responses
func requestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for health checks to reduce noise
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		log.Printf("[REQUEST] %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		statusText := "OK"
		if status >= 400 {
			statusText = "ERROR"
		}
		log.Printf("[RESPONSE] %s %s -> %d %s (%v)", c.Request.Method, c.Request.URL.Path, status, statusText, duration)
	}
}
