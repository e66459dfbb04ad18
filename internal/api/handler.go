package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"mealview/config"
	"mealview/internal/session"
	"mealview/internal/store"
	"mealview/internal/viewer"
)

const (
	ctxViewer    = "viewer"
	ctxSessionID = "session_id"
)

// Handler holds shared dependencies for screen and API handlers.
type Handler struct {
	registry *session.Registry
	store    store.Store
	labels   Labels

	cookieName     string
	secureCookie   bool
	settleWait     time.Duration
	refreshSeconds int
}

// NewHandler creates a new handler. s may be nil when diagnostics are disabled.
func NewHandler(cfg *config.Config, registry *session.Registry, s store.Store) *Handler {
	return &Handler{
		registry:       registry,
		store:          s,
		labels:         LabelsFor(cfg.UI.Language),
		cookieName:     cfg.Session.CookieName,
		secureCookie:   cfg.Session.SecureCookie,
		settleWait:     cfg.Server.SettleWait,
		refreshSeconds: cfg.Server.RefreshSeconds,
	}
}

// settle waits up to the configured time for an in-flight fetch to finish so
// most requests render a final state instead of the loading screen.
func (h *Handler) settle(ctx context.Context, v *viewer.Viewer) viewer.State {
	if h.settleWait <= 0 {
		return v.State()
	}
	ctx, cancel := context.WithTimeout(ctx, h.settleWait)
	defer cancel()
	s, _ := v.Wait(ctx)
	return s
}

func viewerFrom(c *gin.Context) *viewer.Viewer {
	return c.MustGet(ctxViewer).(*viewer.Viewer)
}
