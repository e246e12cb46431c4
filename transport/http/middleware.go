package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/service"
)

// callerAddressKey is where middleware stores the resolved wallet address.
const callerAddressKey = "walletAddress"

// CallerAddress returns the wallet address resolved by RequireIdentity or
// OptionalIdentity for the current request.
func CallerAddress(c *gin.Context) (string, bool) {
	address, ok := c.Get(callerAddressKey)
	if !ok {
		return "", false
	}
	return address.(string), true
}

// RequireIdentity resolves the session cookie to a wallet address and aborts
// with 401 when no valid session is presented. It is the sole gate in front
// of state-mutating endpoints.
func RequireIdentity(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		address, err := resolveIdentity(c, authService)
		if err != nil {
			if errors.Is(err, core.ErrStoreOperationFailed) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(callerAddressKey, address)
		c.Next()
	}
}

// OptionalIdentity resolves the session cookie when present and valid, and
// lets the request through either way. A store outage still aborts: it must
// not be mistaken for an anonymous caller.
func OptionalIdentity(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		address, err := resolveIdentity(c, authService)
		if err != nil {
			if errors.Is(err, core.ErrStoreOperationFailed) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
				return
			}
			c.Next()
			return
		}

		c.Set(callerAddressKey, address)
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, authService *service.AuthService) (string, error) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		return "", core.ErrSessionInvalid
	}

	return authService.Identify(c.Request.Context(), sessionID)
}
