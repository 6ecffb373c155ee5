package handler

import (
	"net/http"

	"cloud-connectivity-check/internal/adapter/http/middleware"
	"cloud-connectivity-check/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CheckSvc ports.CheckService
	Metrics  http.Handler // nil = /metrics disabled
	Logger   zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	health := NewHealthHandler(deps.CheckSvc)
	r.GET("/livez", Live)
	r.GET("/health", health.Health)
	r.GET("/health/:check", health.Check)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	return r
}
