package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"timesheet/internal/usecase"
)

const (
	actorKey     = "actor"
	requestIDKey = "request_id"
)

// HTTPServer returns a configured http.Server exposing the timesheet API.
// Call ListenAndServe on the returned server in a goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("http server configured", slog.String("addr", addr))
	return srv
}

// Router builds the gin engine with every route.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(a.log))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	h := &handlers{uc: a.uc}
	api := r.Group("/api", a.requireActor())
	api.GET("/me", h.me)
	api.GET("/entries", h.listEntries)
	api.POST("/entries", h.saveEntry)
	api.POST("/entries/evaluate", h.evaluate)
	api.GET("/entries/export-xlsx", h.exportXLSX)
	api.PUT("/entries/:id", h.updateEntry)
	api.DELETE("/entries/:id", h.deleteEntry)
	api.GET("/summary/month", h.monthSummary)
	api.GET("/overtime/summary", h.overtimeSummary)
	api.GET("/hr/users", h.hrUsers)
	api.GET("/hr/config/:userId", h.getUserConfig)
	api.PUT("/hr/config/:userId", h.putUserConfig)
	api.GET("/holidays", h.holidays)

	settings := r.Group("/settings", a.requireActor())
	settings.GET("/hr_access_rules", h.getAccessRules)
	settings.POST("/hr_access_rules", h.saveAccessRules)
	settings.POST("/hr_groups", h.legacyGroup(usecase.LegacyHRGroups))
	settings.POST("/hr_user_groups", h.legacyGroup(usecase.LegacyEmployeeGroups))
	return r
}

// requestLogger provides basic request logging with a request id.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("remote", c.ClientIP()),
			slog.String("request_id", id),
			slog.Duration("dur", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			log.Error("http request", append(attrs, slog.String("error", c.Errors.String()))...)
			return
		}
		log.Info("http request", attrs...)
	}
}

// requireActor reads the authenticated user id set by the fronting
// proxy and rejects requests without one.
func (a *App) requireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(a.authHeader)
		if actor == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}
