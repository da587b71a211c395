package handlers

import (
	"net/http"
	"strings"

	"authsvc"

	"github.com/gin-gonic/gin"
)

// ctxUsername is the gin context key holding the username bound to the request token.
const ctxUsername = "username"

const (
	codeMissingToken = "MISSING_TOKEN"
	codeInvalidToken = "INVALID_TOKEN"

	msgMissingToken = "no token provided"
	msgInvalidToken = "failed to authenticate token"
)

// bearerAuth requires "Authorization: Bearer <token>". A missing token is 403,
// a token that does not verify is 401.
func (h *Handler) bearerAuth(c *gin.Context) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
	token = strings.TrimSpace(token)
	if scheme == "" || token == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, authsvc.Failure(codeMissingToken, msgMissingToken))
		return
	}
	if !strings.EqualFold(scheme, "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, authsvc.Failure(codeInvalidToken, msgInvalidToken))
		return
	}

	username, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, authsvc.Failure(codeInvalidToken, msgInvalidToken))
		return
	}

	c.Set(ctxUsername, username)
	c.Next()
}

// currentUsername returns the username set by bearerAuth.
func currentUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
