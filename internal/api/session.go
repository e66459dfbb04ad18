package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Session attaches the caller's viewer to the request, opening a new session
// (and mounting its viewer) when the cookie is missing or stale.
func (h *Handler) Session(c *gin.Context) {
	id, _ := c.Cookie(h.cookieName)
	sessionID, v, created := h.registry.Open(id)
	if created {
		h.setSessionCookie(c, sessionID, 0)
	}
	c.Set(ctxSessionID, sessionID)
	c.Set(ctxViewer, v)
	c.Next()
}

// DeleteSession tears down the caller's viewer and clears the cookie.
func (h *Handler) DeleteSession(c *gin.Context) {
	if id, err := c.Cookie(h.cookieName); err == nil && id != "" {
		h.registry.Close(id)
	}
	h.setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// setSessionCookie writes the session cookie. maxAge 0 keeps it for the
// browser session only; a negative maxAge deletes it.
func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, maxAge, "/", "", h.secureCookie, true)
}
