package handlers

import (
	"net/http"
	"os"

	"activities-system/config"
	"activities-system/utils"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// BindRoutes attaches the HTTP surface to the given router.
func BindRoutes(r *router.Router[*core.RequestEvent], cfg *config.Config, h *ActivityHandler, redisClient *redis.Client) {
	r.GET("/{$}", RootRedirect)

	r.GET("/activities", h.ListActivities)
	r.POST("/activities/{name}/signup", h.Signup)
	r.DELETE("/activities/{name}/signup", h.Unregister)

	r.GET("/static/{path...}", apis.Static(os.DirFS(cfg.StaticDir), false))

	r.GET("/health", HealthCheck(redisClient))

	if cfg.EnableMetrics {
		r.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
	}
}

// RootRedirect sends the caller to the front-end entry page.
func RootRedirect(e *core.RequestEvent) error {
	return e.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
}

// HealthCheck reports process health, including the redis connection when
// the advisory signup lock is enabled.
func HealthCheck(redisClient *redis.Client) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if redisClient != nil {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
		}
		return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}
}
