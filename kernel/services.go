package kernel

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/hearthstack/hearth/appconfig"
	"github.com/hearthstack/hearth/container"
	"github.com/hearthstack/hearth/errhandler"
	"github.com/hearthstack/hearth/event"
	"github.com/hearthstack/hearth/logging"
	"github.com/hearthstack/hearth/monitoring"
	"github.com/hearthstack/hearth/runner"
)

// Bootstrap parameters registered before any definition.
const (
	ParamEnvironment = "kernel.environment"
	ParamBasePath    = "kernel.base_path"
	ParamConfigFiles = "kernel.config_files"
	ParamDebug       = "kernel.debug"
)

// Identifiers of the default service definitions. Extensions override
// these to replace framework behavior.
const (
	ServiceLogger        = "kernel.logger"
	ServiceMetrics       = "kernel.metrics"
	ServiceConfig        = "config.values"
	ServiceContext       = "app.context"
	ServiceErrorRenderer = "error.renderer"
	ServiceErrorHandler  = "error.handler"
	ServiceEventBus      = "event.bus"
	ServiceEventFactory  = "event.factory"
	ServiceHTTPConfig    = "http.config"
	ServiceRouter        = "http.router"
	ServiceRunner        = "app.runner"
)

// registerDefaults declares the default binding for every abstraction
// the framework wires. All of them are lazy; extensions may override any
// of them during the configure phase.
func (k *Kernel) registerDefaults(c *container.Container) error {
	defs := map[string]container.Factory{
		ServiceLogger: func(c *container.Container) (any, error) {
			env, err := container.ResolveParameter[string](c, ParamEnvironment)
			if err != nil {
				return nil, err
			}
			debug, err := container.ResolveParameter[bool](c, ParamDebug)
			if err != nil {
				return nil, err
			}
			return logging.ForEnvironment(env, debug), nil
		},

		ServiceMetrics: func(c *container.Container) (any, error) {
			return monitoring.New(), nil
		},

		ServiceConfig: func(c *container.Container) (any, error) {
			basePath, err := container.ResolveParameter[string](c, ParamBasePath)
			if err != nil {
				return nil, err
			}
			names, err := container.ResolveParameter[[]string](c, ParamConfigFiles)
			if err != nil {
				return nil, err
			}

			paths := make([]string, len(names))
			for i, name := range names {
				if filepath.IsAbs(name) {
					paths[i] = name
				} else {
					paths[i] = filepath.Join(basePath, name)
				}
			}
			return appconfig.LoadValues(paths)
		},

		ServiceContext: func(c *container.Container) (any, error) {
			env, err := container.ResolveParameter[string](c, ParamEnvironment)
			if err != nil {
				return nil, err
			}
			basePath, err := container.ResolveParameter[string](c, ParamBasePath)
			if err != nil {
				return nil, err
			}
			debug, err := container.ResolveParameter[bool](c, ParamDebug)
			if err != nil {
				return nil, err
			}
			return appconfig.NewContext(env, basePath, debug), nil
		},

		ServiceErrorRenderer: func(c *container.Container) (any, error) {
			return errhandler.NewJSONRenderer(), nil
		},

		ServiceErrorHandler: func(c *container.Container) (any, error) {
			renderer, err := container.Resolve[errhandler.Renderer](c, ServiceErrorRenderer)
			if err != nil {
				return nil, err
			}
			appCtx, err := container.Resolve[*appconfig.Context](c, ServiceContext)
			if err != nil {
				return nil, err
			}
			return errhandler.New(renderer, appCtx.Debug()), nil
		},

		ServiceEventBus: func(c *container.Container) (any, error) {
			logger, err := container.Resolve[*logging.Logger](c, ServiceLogger)
			if err != nil {
				return nil, err
			}
			metrics, err := container.Resolve[*monitoring.Metrics](c, ServiceMetrics)
			if err != nil {
				return nil, err
			}
			return event.NewBus(logger).WithMetrics(metrics), nil
		},

		ServiceEventFactory: func(c *container.Container) (any, error) {
			return event.NewFactory(), nil
		},

		ServiceHTTPConfig: func(c *container.Container) (any, error) {
			values, err := container.Resolve[*appconfig.Values](c, ServiceConfig)
			if err != nil {
				return nil, err
			}
			cfg := runner.DefaultConfig()
			if err := appconfig.Bind(values, "server", &cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		},

		ServiceRouter: func(c *container.Container) (any, error) {
			cfg, err := container.Resolve[runner.Config](c, ServiceHTTPConfig)
			if err != nil {
				return nil, err
			}
			logger, err := container.Resolve[*logging.Logger](c, ServiceLogger)
			if err != nil {
				return nil, err
			}
			metrics, err := container.Resolve[*monitoring.Metrics](c, ServiceMetrics)
			if err != nil {
				return nil, err
			}
			appCtx, err := container.Resolve[*appconfig.Context](c, ServiceContext)
			if err != nil {
				return nil, err
			}
			return runner.NewEngine(cfg, k.handlers, logger, metrics, appCtx.Debug()), nil
		},

		ServiceRunner: func(c *container.Container) (any, error) {
			engine, err := container.Resolve[*gin.Engine](c, ServiceRouter)
			if err != nil {
				return nil, err
			}
			cfg, err := container.Resolve[runner.Config](c, ServiceHTTPConfig)
			if err != nil {
				return nil, err
			}
			logger, err := container.Resolve[*logging.Logger](c, ServiceLogger)
			if err != nil {
				return nil, err
			}
			return runner.NewHTTP(engine, cfg, logger), nil
		},
	}

	for id, factory := range defs {
		if err := c.Set(id, factory); err != nil {
			return err
		}
	}
	return nil
}
