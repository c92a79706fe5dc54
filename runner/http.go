package runner

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hearthstack/hearth/errhandler"
	"github.com/hearthstack/hearth/logging"
	"github.com/hearthstack/hearth/middleware"
	"github.com/hearthstack/hearth/monitoring"
)

// shutdownTimeout bounds graceful drain after the context is cancelled.
const shutdownTimeout = 10 * time.Second

// Config holds the HTTP runner configuration, bound from the "server"
// config section.
type Config struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" validate:"required"`

	CORSOrigins []string `yaml:"cors_origins"`
	Gzip        bool     `yaml:"gzip"`

	RateLimit struct {
		Enabled           bool `yaml:"enabled"`
		RequestsPerSecond int  `yaml:"requests_per_second" validate:"min=0"`
		Burst             int  `yaml:"burst" validate:"min=0"`
	} `yaml:"rate_limit"`
}

// DefaultConfig returns the runner defaults; config-file keys override
// them field by field.
func DefaultConfig() Config {
	cfg := Config{
		Host:        "0.0.0.0",
		Port:        "8080",
		CORSOrigins: []string{"*"},
		Gzip:        true,
	}
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 100
	cfg.RateLimit.Burst = 200
	return cfg
}

// NewEngine assembles the shared Gin engine: recovery into the error
// handler, metrics, CORS, rate limiting, compression, and the health and
// metrics endpoints. Extensions register their routes on this engine
// during the boot hook.
func NewEngine(cfg Config, manager *errhandler.Manager, logger *logging.Logger, metrics *monitoring.Metrics, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(errhandler.Recovery(manager, logger, metrics))
	if metrics != nil {
		engine.Use(monitoring.Middleware(metrics))
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	engine.Use(middleware.CORS(corsCfg))

	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	if cfg.Gzip {
		engine.Use(middleware.Gzip())
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	return engine
}

// HTTP serves the shared engine until the context is cancelled, then
// drains gracefully.
type HTTP struct {
	engine *gin.Engine
	cfg    Config
	logger *logging.Logger
}

// NewHTTP creates the default HTTP runner.
func NewHTTP(engine *gin.Engine, cfg Config, logger *logging.Logger) *HTTP {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &HTTP{
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

// Run starts the HTTP server and blocks until it stops. Context
// cancellation triggers a graceful shutdown and returns nil.
func (r *HTTP) Run(ctx context.Context) error {
	addr := r.cfg.Host + ":" + r.cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: r.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("Starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
