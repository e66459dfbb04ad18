package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"mealview/config"
	"mealview/internal/mw"
	"mealview/internal/session"
	"mealview/internal/store"
)

// NewRouter creates and configures a new Gin router. s may be nil when the
// diagnostics database is disabled.
func NewRouter(cfg *config.Config, registry *session.Registry, s store.Store) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(loadTemplates())

	handler := NewHandler(cfg, registry, s)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// Diagnostics hit the database; a short-lived cache keeps them cheap.
	cacheStore := cache.New(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.Server.CacheTTL)

	r.GET("/healthz", handler.Healthz)

	// Screen
	screen := r.Group("/")
	screen.Use(rateLimiter, handler.Session)
	{
		screen.GET("", handler.GetScreen)
		screen.POST("reload", handler.PostReload)
	}

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/state", handler.Session, handler.GetState)
		api.POST("/reload", handler.Session, handler.PostReloadAPI)
		api.DELETE("/session", handler.DeleteSession)
		api.GET("/fetches", caching, handler.GetFetches)
	}

	return r
}
