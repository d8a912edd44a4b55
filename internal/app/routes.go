package app

import (
	"time"

	"github.com/A-CE-V/Endless-Artificial-Connections/internal/modules/health"
	"github.com/A-CE-V/Endless-Artificial-Connections/internal/modules/inference"
	"github.com/A-CE-V/Endless-Artificial-Connections/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

var processStart = time.Now()

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	root := r.Group("")
	health.RegisterRoutes(root, processStart)

	gateway := inference.New(a.cfg, a.logger)
	inference.NewHandler(gateway).RegisterRoutes(root)
}
