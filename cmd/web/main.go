package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/recipenest/recipenest-web/config"
	"github.com/recipenest/recipenest-web/internal/handlers"
	"github.com/recipenest/recipenest-web/internal/middleware"
	"github.com/recipenest/recipenest-web/internal/services"
	"github.com/recipenest/recipenest-web/internal/session"
	"github.com/recipenest/recipenest-web/internal/upstream"
	"github.com/recipenest/recipenest-web/pkg/httpclient"
	"github.com/recipenest/recipenest-web/pkg/jwt"
	"github.com/recipenest/recipenest-web/pkg/logger"
	"github.com/recipenest/recipenest-web/pkg/metrics"
	"github.com/recipenest/recipenest-web/pkg/profiling"
	"github.com/recipenest/recipenest-web/pkg/tracing"
	"github.com/recipenest/recipenest-web/web"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	environment := cfg.Server.AppEnv
	if err := logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: environment,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Starting RecipeNest web",
		zap.String("port", cfg.Server.Port),
		zap.String("environment", environment),
		zap.String("upstream", cfg.Upstream.BaseURL))

	shutdownTracer, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		environment,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	stopProfiler, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		environment,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.RecordInfrastructureMetrics()

	gin.SetMode(cfg.Server.GinMode)
	router := buildRouter(cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracer(ctx); err != nil {
		logger.Error("Tracer shutdown failed", zap.Error(err))
	}

	logger.Info("Server exited")
}

func buildRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(web.Templates())

	router.Use(gin.CustomRecovery(handlers.InternalError))
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	store := session.NewStore(cfg.SessionTTL())
	tokens := jwt.NewTokenManager(cfg.Session.Secret, cfg.Observability.ServiceName, cfg.SessionTTL())
	cookie := middleware.CookieConfig{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
		MaxAge: int(cfg.SessionTTL().Seconds()),
	}
	router.Use(middleware.SessionMiddleware(store, tokens, cookie))

	client := upstream.New(cfg.Upstream, httpclient.NewStandardClientWithTimeout(cfg.UpstreamTimeout()))
	accountSvc := services.NewAccountService(client)
	recipeSvc := services.NewRecipeService(client)

	ah := handlers.NewAccountHandler(accountSvc, recipeSvc, store, cookie)
	rh := handlers.NewRecipeHandler(recipeSvc, accountSvc)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	handlers.RegisterRoutes(router, ah, rh, limiter.Middleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
