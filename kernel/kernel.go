package kernel

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/hearthstack/hearth/appconfig"
	"github.com/hearthstack/hearth/container"
	"github.com/hearthstack/hearth/discovery"
	"github.com/hearthstack/hearth/dotenv"
	"github.com/hearthstack/hearth/errhandler"
	"github.com/hearthstack/hearth/event"
	"github.com/hearthstack/hearth/logging"
	"github.com/hearthstack/hearth/monitoring"
	"github.com/hearthstack/hearth/runner"
)

// AppDir is the directory under the base path scanned for user service
// manifests.
const AppDir = "app"

// Kernel orchestrates the boot sequence and produces a ready-to-run
// application context. A kernel returned by New is fully booted; any
// boot fault aborts construction and the hosting process should not use
// the partial kernel.
type Kernel struct {
	cfg       *Config
	container *container.Container
	handlers  *errhandler.Manager

	logger  *logging.Logger
	metrics *monitoring.Metrics
	appCtx  *appconfig.Context
	bus     event.Dispatcher
	events  *event.Factory
}

// New boots a kernel from the given configuration.
func New(cfg *Config) (*Kernel, error) {
	start := time.Now()

	k := &Kernel{
		cfg:      cfg,
		handlers: errhandler.NewManager(),
	}

	// Load environment files; missing ones are not an error.
	loadedEnvs, err := dotenv.Load(cfg.DotEnvs()...)
	if err != nil {
		return nil, fmt.Errorf("load dotenv files: %w", err)
	}

	// Bootstrap parameters from the (possibly just augmented) environment.
	rt, err := appconfig.LoadRuntime()
	if err != nil {
		return nil, err
	}

	c := container.New()
	k.container = c
	for name, value := range map[string]any{
		ParamEnvironment: rt.Environment,
		ParamBasePath:    cfg.BasePath(),
		ParamConfigFiles: cfg.ConfigFiles(),
		ParamDebug:       rt.DebugEnabled(),
	} {
		if err := c.SetParameter(name, value); err != nil {
			return nil, err
		}
	}

	// Default definitions for every framework abstraction, then the
	// user-supplied service manifests under <basePath>/app.
	if err := k.registerDefaults(c); err != nil {
		return nil, err
	}
	manifests, err := discovery.Register(c, filepath.Join(cfg.BasePath(), AppDir))
	if err != nil {
		return nil, fmt.Errorf("discover app services: %w", err)
	}

	// Apply application configuration.
	values, err := container.Resolve[*appconfig.Values](c, ServiceConfig)
	if err != nil {
		return nil, err
	}
	k.appCtx, err = container.Resolve[*appconfig.Context](c, ServiceContext)
	if err != nil {
		return nil, err
	}
	if locale, ok := values.String("locale"); ok {
		k.appCtx.SetLocale(locale)
	}

	// Reserve error handler for the pre-compile window: built directly,
	// the container cannot provide the real one yet.
	reserve := errhandler.New(errhandler.NewFallbackRenderer(), k.appCtx.Debug())
	k.handlers.Activate(reserve)

	bootLogger := logging.ForEnvironment(rt.Environment, rt.DebugEnabled())
	bootLogger.Info("Booting kernel",
		zap.String("environment", rt.Environment),
		zap.Bool("debug", rt.DebugEnabled()),
		zap.String("base_path", cfg.BasePath()),
		zap.Strings("env_files", loadedEnvs),
		zap.Int("manifests", len(manifests)),
		zap.Int("extensions", len(cfg.Extensions())),
	)

	// Eager metrics so extension hooks are timed; re-taken after compile
	// in case an extension overrides the definition.
	k.metrics, err = container.Resolve[*monitoring.Metrics](c, ServiceMetrics)
	if err != nil {
		return nil, err
	}

	// Two-phase extension lifecycle around the compile point.
	if err := k.runHooks(c, "configure", Extension.Configure); err != nil {
		return nil, err
	}

	c.Compile()

	if err := k.runHooks(c, "boot", Extension.Boot); err != nil {
		return nil, err
	}

	// The container is compiled: swap the reserve handler for the real
	// one and take the final infrastructure services.
	handler, err := container.Resolve[*errhandler.Handler](c, ServiceErrorHandler)
	if err != nil {
		return nil, err
	}
	k.handlers.Activate(handler)

	k.logger, err = container.Resolve[*logging.Logger](c, ServiceLogger)
	if err != nil {
		return nil, err
	}
	k.metrics, err = container.Resolve[*monitoring.Metrics](c, ServiceMetrics)
	if err != nil {
		return nil, err
	}
	k.bus, err = container.Resolve[event.Dispatcher](c, ServiceEventBus)
	if err != nil {
		return nil, err
	}
	k.events, err = container.Resolve[*event.Factory](c, ServiceEventFactory)
	if err != nil {
		return nil, err
	}

	k.metrics.SetServicesRegistered(len(c.IDs()))
	k.metrics.RecordBoot(time.Since(start))
	k.logger.Info("Kernel booted", zap.Duration("duration", time.Since(start)))

	if err := k.bus.Dispatch(context.Background(), k.events.KernelBooted()); err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", event.KernelBooted, err)
	}

	return k, nil
}

// runHooks invokes one lifecycle hook on every extension in registration
// order. Hook faults are not caught here; the first error aborts boot.
func (k *Kernel) runHooks(c *container.Container, name string, hook func(Extension, *container.Container, *Config) error) error {
	for _, ext := range k.cfg.Extensions() {
		label := fmt.Sprintf("%T", ext)
		var timer *monitoring.HookTimer
		if k.metrics != nil {
			timer = monitoring.NewHookTimer(k.metrics, label, name)
		}

		err := hook(ext, c, k.cfg)

		if timer != nil {
			timer.Stop()
		}
		if err != nil {
			return fmt.Errorf("extension %s %s: %w", label, name, err)
		}
	}
	return nil
}

// Run drives one application cycle: the before-run event, the resolved
// application runner, and the terminated event.
func (k *Kernel) Run(ctx context.Context) error {
	if err := k.bus.Dispatch(ctx, k.events.BeforeKernelRun()); err != nil {
		return fmt.Errorf("dispatch %s: %w", event.BeforeKernelRun, err)
	}

	r, err := container.Resolve[runner.Runner](k.container, ServiceRunner)
	if err != nil {
		return err
	}

	runErr := r.Run(ctx)

	if err := k.bus.Dispatch(context.Background(), k.events.KernelTerminated()); err != nil && runErr == nil {
		runErr = fmt.Errorf("dispatch %s: %w", event.KernelTerminated, err)
	}
	return runErr
}

// Container returns the compiled service container.
func (k *Kernel) Container() *container.Container {
	return k.container
}

// Context returns the application runtime context.
func (k *Kernel) Context() *appconfig.Context {
	return k.appCtx
}

// ErrorHandlers returns the manager owning the active error handler.
func (k *Kernel) ErrorHandlers() *errhandler.Manager {
	return k.handlers
}

// Logger returns the kernel logger.
func (k *Kernel) Logger() *logging.Logger {
	return k.logger
}

// Close releases kernel resources. Call after Run returns.
func (k *Kernel) Close() error {
	if k.logger != nil {
		// Sync failures on stdout are expected on some platforms.
		_ = k.logger.Sync()
	}
	return nil
}
