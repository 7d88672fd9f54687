package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/pieshop/admin/docs"
	"github.com/pieshop/admin/internal/infrastructure/config"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
	"github.com/pieshop/admin/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig holds what the middleware chain needs
type EngineConfig struct {
	HTTP    config.HTTPConfig
	Tracing middleware.TracingConfig
	Metrics middleware.HTTPMetricsConfig
	Swagger bool
	Logger  *zap.Logger
}

// SwaggerPath serves the API documentation UI and doc.json
const SwaggerPath = "/swagger/*any"

// NewEngine builds the gin engine with the full middleware chain and every
// admin route mounted at the root.
func NewEngine(cfg EngineConfig, handlers Handlers) (*gin.Engine, error) {
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(cfg.Logger),
		logger.GinMiddleware(cfg.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
	)
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	engine.Use(middleware.TracingWithConfig(cfg.Tracing)...)
	engine.Use(middleware.HTTPMetrics(cfg.Metrics))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", c.GetString(logger.RequestIDKey)))
	})

	if cfg.Swagger {
		engine.GET(SwaggerPath, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := NewRouter(engine)
	for _, group := range handlers.DomainGroups() {
		r.Register(group)
	}
	r.Setup()

	return engine, nil
}
