package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RouterConfig holds what the router needs besides the handlers.
type RouterConfig struct {
	Logger    *logrus.Logger
	RateLimit string
	DB        *gorm.DB
	Redis     *redis.Client
}

// NewRouter wires the HTTP routes.
func NewRouter(days *DayHandler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(cfg.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders(requestIDHeader)
	corsConfig.AddExposeHeaders(requestIDHeader)
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", Health(cfg.DB, cfg.Redis))

	v1 := r.Group("/v1")
	if cfg.RateLimit != "" {
		v1.Use(RateLimit(cfg.RateLimit))
	}

	v1.GET("/days/:date/:mode", days.Preview)
	v1.POST("/days/:date/:mode/session", days.Open)
	v1.GET("/comparisons/:date", days.Compare)

	v1.GET("/session", days.Current)
	v1.PATCH("/session/fields", days.Edit)
	v1.POST("/session/save", days.Save)
	v1.POST("/session/sync", days.Sync)
	v1.DELETE("/session", days.Close)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, APIError{Detail: "route not found"})
	})
	return r
}
