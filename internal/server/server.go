package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/eventdesk/internal/config"
	"github.com/smallbiznis/eventdesk/internal/observability"
	obsmiddleware "github.com/smallbiznis/eventdesk/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/eventdesk/internal/observability/metrics"
	obstracing "github.com/smallbiznis/eventdesk/internal/observability/tracing"
	reportdomain "github.com/smallbiznis/eventdesk/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			err := srv.Shutdown(shutdownCtx)
			s.wait()
			return err
		},
	})
}

type Server struct {
	engine  *gin.Engine
	cfg     config.Config
	reports reportdomain.Service
	log     *zap.Logger

	// jobs tracks background generation runs so shutdown can drain them.
	jobs sync.WaitGroup
}

type ServerParams struct {
	fx.In

	Gin     *gin.Engine
	Cfg     config.Config
	Reports reportdomain.Service
	Log     *zap.Logger
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:  p.Gin,
		cfg:     p.Cfg,
		reports: p.Reports,
		log:     p.Log.Named("http.server"),
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) wait() {
	s.jobs.Wait()
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(UserContext())

	api.GET("/dashboard", s.GetDashboard)

	// -------- Reports --------
	api.GET("/reports", s.ListReports)
	api.POST("/reports/generate", s.GenerateReports)
	api.GET("/reports/:name", s.GetReport)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
