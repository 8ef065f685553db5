// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"quotation_backend/platform/config"
	"quotation_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// ContextAdminIDKey is the gin context key for the authenticated admin ID.
	ContextAdminIDKey = "adminID"
	// ContextAdminEmailKey is the gin context key for the admin's email.
	ContextAdminEmailKey = "adminEmail"
	// ContextSessionIDKey is the gin context key for the admin session ID.
	ContextSessionIDKey = "sessionID"

	errMissingToken = "missing token"
	errInvalidToken = "invalid token"
)

// SessionChecker verifies that a session token still maps to a live
// server-side session. Revoked or expired sessions must return an error.
type SessionChecker interface {
	CheckSession(rawToken string) error
}

// RequestLogger logs HTTP requests with timing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()

		log.HTTPRequest(c.Request.Method, path, status, float64(latency.Milliseconds()), clientIP)
	}
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		// Only add HSTS in production
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// IPRateLimiter manages per-IP rate limiters.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	log      *logger.Logger
}

// NewIPRateLimiter creates a new IP-based rate limiter.
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
		log:   log,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	limiter, exists := i.limiters.Load(ip)
	if !exists {
		newLimiter := rate.NewLimiter(i.rate, i.burst)
		i.limiters.Store(ip, newLimiter)
		return newLimiter
	}
	return limiter.(*rate.Limiter)
}

// RateLimit returns a middleware that rate limits by IP.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := i.getLimiter(ip)

		if !limiter.Allow() {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

// AuthRateLimiter is a stricter rate limiter for auth endpoints.
type AuthRateLimiter struct {
	*IPRateLimiter
}

// NewAuthRateLimiter creates a rate limiter for authentication endpoints
// with stricter limits (e.g., 5 requests per minute).
func NewAuthRateLimiter(log *logger.Logger) *AuthRateLimiter {
	return &AuthRateLimiter{
		IPRateLimiter: NewIPRateLimiter(rate.Limit(5.0/60.0), 5, log), // 5 requests per minute, burst of 5
	}
}

// AdminAuthRequired returns middleware that validates admin session tokens.
// The token is a JWT carrying the admin ID; the optional checker verifies the
// session row still exists server-side so revoked sessions stop working.
func AdminAuthRequired(cfg config.SessionConfig, checker SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, errMissingToken)
			return
		}

		claims, err := parseSessionClaims(rawToken, cfg)
		if err != nil {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		adminID, err := parseAdminID(claims)
		if err != nil {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		if checker != nil {
			if err := checker.CheckSession(rawToken); err != nil {
				abortUnauthorized(c, errInvalidToken)
				return
			}
		}

		c.Set(ContextAdminIDKey, adminID)
		if email, _ := claims["email"].(string); email != "" {
			c.Set(ContextAdminEmailKey, email)
		}
		if sid, _ := claims["sid"].(string); sid != "" {
			c.Set(ContextSessionIDKey, sid)
		}
		c.Next()
	}
}

func extractBearerToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	rawToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if rawToken == "" {
		return "", false
	}

	return rawToken, true
}

func parseSessionClaims(rawToken string, cfg config.SessionConfig) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.GetSessionSecret()), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New(errInvalidToken)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New(errInvalidToken)
	}

	if tokenType, _ := claims["type"].(string); tokenType != "admin_session" {
		return nil, errors.New(errInvalidToken)
	}

	return claims, nil
}

func parseAdminID(claims jwt.MapClaims) (uuid.UUID, error) {
	adminIDRaw, _ := claims["sub"].(string)
	return uuid.Parse(adminIDRaw)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
