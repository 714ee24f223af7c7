package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	_ "pei_compras/docs"
	"pei_compras/internal/adapter/http/handlers"
	"pei_compras/internal/infrastructure/health"
	"pei_compras/internal/infrastructure/metrics"
	"pei_compras/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	DefaultPort     = 8080
	shutdownTimeout = 10 * time.Second
)

// Dependencies are the use cases and probes the HTTP layer serves.
type Dependencies struct {
	Pipeline   usecase.IPipelineUseCase
	RFQ        usecase.IRFQUseCase
	Comparison usecase.IPriceComparisonUseCase
	Health     *health.Checker
	Logger     *zap.Logger
}

// Run will start the server and block until ctx is cancelled.
func Run(ctx context.Context, deps Dependencies, port int) error {
	if port <= 0 {
		port = DefaultPort
	}
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("http server listening", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	deps.Logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	router := gin.New()
	setMiddlewares(router, deps.Logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if deps.Health != nil {
		router.GET("/health", handlers.NewHealthHandler(deps.Health).Health)
	}

	pipelineHandler := handlers.NewPipelineHandler(deps.Pipeline, deps.Logger)
	rfqHandler := handlers.NewRFQHandler(deps.RFQ)
	comparisonHandler := handlers.NewComparisonHandler(deps.Comparison)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addRequestRoutes(v1, pipelineHandler, rfqHandler, comparisonHandler)
	addRFQRoutes(v1, rfqHandler)
	return router
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(requestLogger(logger))
	router.Use(requestMetrics())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
