package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Homeboard/internal/config"
	"github.com/dkeye/Homeboard/internal/metrics"
)

// ClientTokenMiddleware tags every browser with a random token cookie so
// log lines from the same client can be correlated without a login.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("module", "adapters.http").
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Str("ct", c.GetString("client_token")).
			Msg("request")
	}
}

func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error().Str("module", "adapters.http").Interface("panic", err).Msg("handler panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("HomeboardSessions", store))
	r.Use(ClientTokenMiddleware())
	if cfg.Mode == "debug" {
		r.Use(accessLog())
	}
	r.Use(metrics.Middleware())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	api.GET("/ping", h.ping)

	api.POST("/auth/login", h.login)
	api.POST("/auth/logout", h.logout)

	api.GET("/users", h.listUsers)
	api.POST("/users", h.createUser)
	api.DELETE("/users/:userId", h.deleteUser)

	api.GET("/rooms", h.listRooms)
	api.POST("/rooms", h.createRoom)
	api.DELETE("/rooms/:roomId", h.deleteRoom)
	api.GET("/rooms/:roomId/sections", h.listSections)

	api.POST("/sections", h.createSection)
	api.DELETE("/sections/:sectionId", h.deleteSection)

	api.GET("/missions", h.listMissions)
	api.POST("/missions", h.createMission)
	api.PUT("/missions/:missionId", h.updateMission)
	api.DELETE("/missions/:missionId", h.deleteMission)

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")
	return r
}
