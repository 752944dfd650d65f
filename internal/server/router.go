// ABOUTME: Gin router for the local home API on port 1778
// ABOUTME: CORS is wide open; the API only ever binds to the home network

package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultPort is where the home API has always lived
const DefaultPort = 1778

// NewRouter builds the gin engine with all home API routes attached
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Requested-With"},
	}))

	api := router.Group("/api")
	{
		api.POST("/alex/observation", h.PostObservation)
		api.POST("/alex/note", h.PostNote)
		api.POST("/alex/love", h.PostLove)
		api.POST("/alex/emotion", h.PostEmotion)

		api.GET("/alex/state", h.GetAlexState)
		api.GET("/fox/state", h.GetFoxState)
		api.GET("/love", h.GetLove)
		api.GET("/notes", h.GetNotes)
		api.GET("/ping", h.Ping)
		api.GET("/debug/junction/:id", h.DebugJunction)

		api.POST("/fox/sync", h.PostFoxSync)
	}

	return router
}

// requestLogger logs each request at debug level
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("api request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}
