// Package health reports liveness: cache backend reachability and
// which provider credentials are configured.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appcfg "github.com/project-clarion/core/internal/config"
	"github.com/project-clarion/core/internal/pkg/cron"
	pkgredis "github.com/project-clarion/core/internal/pkg/redis"
)

func RegisterRoutes(rg *gin.RouterGroup, cfg *appcfg.AppConfig, rc *pkgredis.Client, scheduler *cron.Scheduler) {
	rg.GET("/health", func(c *gin.Context) {
		cacheOK := true
		if rc != nil {
			cacheOK = rc.Ping(c.Request.Context()) == nil
		}

		status := "ok"
		code := http.StatusOK
		if !cacheOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"cache": gin.H{
				"backend": cfg.Cache.Backend,
				"ok":      cacheOK,
			},
			"providers": gin.H{
				"fact_check": cfg.FactCheck.APIKey != "",
				"news":       cfg.News.APIKey != "",
				"ai":         cfg.SelectAIProvider() != nil,
			},
			"jobs": scheduler.Jobs(),
		})
	})
}
