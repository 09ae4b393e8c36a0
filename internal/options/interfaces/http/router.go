package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/optioncalc/pkg/config"
	"github.com/wyfcoding/optioncalc/pkg/metrics"
	"github.com/wyfcoding/optioncalc/pkg/middleware"
)

// RouterOptions 路由构建参数
type RouterOptions struct {
	ServiceName string
	Version     string
	// Metrics 为 nil 时不记录请求指标，也不暴露 MetricsPath
	Metrics     *metrics.Metrics
	MetricsPath string
	RateLimit   config.RateLimitConfig
}

// NewRouter 组装中间件、业务路由、健康检查与指标端点
func NewRouter(h *OptionsHandler, opts RouterOptions) *gin.Engine {
	e := gin.New()
	e.Use(middleware.RequestID(), middleware.Recovery(), middleware.Logging(), middleware.CORS())

	if opts.Metrics != nil {
		e.Use(middleware.Metrics(opts.Metrics))
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		e.GET(path, gin.WrapH(opts.Metrics.Handler()))
	}

	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   opts.ServiceName,
			"version":   opts.Version,
			"timestamp": time.Now().Unix(),
		})
	})

	api := e.Group("", middleware.RateLimit(opts.RateLimit))
	h.RegisterRoutes(api)
	return e
}
