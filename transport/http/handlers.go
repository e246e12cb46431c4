package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/service"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

const sessionCookieMaxAge = int(core.SessionTTL / time.Second)

// authFailedMessage deliberately does not say which check failed.
const authFailedMessage = "invalid signature - authentication failed"

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService

	// secureCookies marks the session cookie Secure; enabled in production.
	secureCookies bool
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, secureCookies bool) *AuthHandlers {
	return &AuthHandlers{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// Challenge handles the challenge request
func (h *AuthHandlers) Challenge(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	message, err := h.authService.Challenge(req.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Login handles the login request and sets the session cookie on success.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req struct {
		Address   string `json:"address" binding:"required"`
		Message   string `json:"message" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Address, req.Message, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		case errors.Is(err, core.ErrAddressMismatch),
			errors.Is(err, core.ErrInvalidSignature),
			errors.Is(err, core.ErrChallengeExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": authFailedMessage})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication unavailable"})
		}
		return
	}

	h.setSessionCookie(c, session.ID, sessionCookieMaxAge)

	c.JSON(http.StatusOK, gin.H{"address": session.Address})
}

// Logout deletes the caller's session if the cookie is present and clears the
// cookie either way. It always reports success.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(SessionCookieName); err == nil {
		h.authService.Logout(c.Request.Context(), sessionID)
	}

	h.setSessionCookie(c, "", -1)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated wallet address.
func (h *AuthHandlers) Me(c *gin.Context) {
	address, ok := CallerAddress(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing from context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// Status reports whether the caller is authenticated. It sits behind the
// optional gate, so anonymous callers get a 200 too.
func (h *AuthHandlers) Status(c *gin.Context) {
	address, ok := CallerAddress(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true, "address": address})
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, value, maxAge, "/", "", h.secureCookies, true)
}
