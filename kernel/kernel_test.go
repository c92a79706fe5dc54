package kernel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthstack/hearth/appconfig"
	"github.com/hearthstack/hearth/container"
	"github.com/hearthstack/hearth/errhandler"
	"github.com/hearthstack/hearth/event"
	"github.com/hearthstack/hearth/runner"
)

// recordingExtension appends hook invocations to a shared trace.
type recordingExtension struct {
	name  string
	trace *[]string
}

func (e *recordingExtension) Configure(c *container.Container, cfg *Config) error {
	*e.trace = append(*e.trace, e.name+".configure")
	return nil
}

func (e *recordingExtension) Boot(c *container.Container, cfg *Config) error {
	*e.trace = append(*e.trace, e.name+".boot")
	return nil
}

// recordingBus captures dispatched events.
type recordingBus struct {
	events []string
}

func (b *recordingBus) Dispatch(ctx context.Context, e event.Event) error {
	b.events = append(b.events, e.Name)
	return nil
}

// stubRunner counts runs.
type stubRunner struct {
	runs int
}

func (r *stubRunner) Run(ctx context.Context) error {
	r.runs++
	return nil
}

// funcExtension builds one-off extensions from closures.
type funcExtension struct {
	configure func(c *container.Container, cfg *Config) error
	boot      func(c *container.Container, cfg *Config) error
}

func (e *funcExtension) Configure(c *container.Container, cfg *Config) error {
	if e.configure == nil {
		return nil
	}
	return e.configure(c, cfg)
}

func (e *funcExtension) Boot(c *container.Container, cfg *Config) error {
	if e.boot == nil {
		return nil
	}
	return e.boot(c, cfg)
}

func resetEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"APP_ENV", "APP_DEBUG", "APP_LOCALE"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func testBasePath(t *testing.T, appYAML string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "app.yaml"), []byte(appYAML), 0o644))
	return dir
}

const minimalAppYAML = "locale: fr_FR\nserver:\n  port: \"0\"\n"

func TestBootCompletes(t *testing.T) {
	resetEnv(t)
	cfg := NewConfig(testBasePath(t, minimalAppYAML))

	k, err := New(cfg)
	require.NoError(t, err)
	defer k.Close()

	t.Run("container compiled", func(t *testing.T) {
		assert.True(t, k.Container().Compiled())
	})

	t.Run("exactly one registered handler, the user one", func(t *testing.T) {
		active := k.ErrorHandlers().Active()
		require.NotNil(t, active)
		assert.True(t, active.Registered())

		resolved, err := container.Resolve[*errhandler.Handler](k.Container(), ServiceErrorHandler)
		require.NoError(t, err)
		assert.Same(t, resolved, active, "active handler should be the container-resolved one, not the reserve")
	})

	t.Run("locale propagated to context", func(t *testing.T) {
		assert.Equal(t, "fr_FR", k.Context().Locale())
	})

	t.Run("default environment is prod", func(t *testing.T) {
		assert.Equal(t, "prod", k.Context().Environment())
		assert.False(t, k.Context().Debug())
	})
}

func TestBootReadsEnvironment(t *testing.T) {
	resetEnv(t)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("APP_DEBUG", "1")

	k, err := New(NewConfig(testBasePath(t, minimalAppYAML)))
	require.NoError(t, err)
	defer k.Close()

	assert.Equal(t, "staging", k.Context().Environment())
	assert.True(t, k.Context().Debug())

	env, err := container.ResolveParameter[string](k.Container(), ParamEnvironment)
	require.NoError(t, err)
	assert.Equal(t, "staging", env)

	debug, err := container.ResolveParameter[bool](k.Container(), ParamDebug)
	require.NoError(t, err)
	assert.True(t, debug)
}

func TestBootLoadsDotEnvFiles(t *testing.T) {
	resetEnv(t)
	dir := testBasePath(t, minimalAppYAML)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ENV=dev\n"), 0o644))

	k, err := New(NewConfig(dir))
	require.NoError(t, err)
	defer k.Close()

	assert.Equal(t, "dev", k.Context().Environment())
}

func TestExtensionHookOrder(t *testing.T) {
	resetEnv(t)

	var trace []string
	a := &recordingExtension{name: "a", trace: &trace}
	b := &recordingExtension{name: "b", trace: &trace}

	k, err := New(NewConfig(testBasePath(t, minimalAppYAML)).WithExtensions(a, b))
	require.NoError(t, err)
	defer k.Close()

	assert.Equal(t, []string{"a.configure", "b.configure", "a.boot", "b.boot"}, trace)
}

func TestConfigureOverrideWins(t *testing.T) {
	resetEnv(t)

	bus := &recordingBus{}
	override := &funcExtension{
		configure: func(c *container.Container, cfg *Config) error {
			return c.Set(ServiceEventBus, func(c *container.Container) (any, error) {
				return bus, nil
			})
		},
	}

	k, err := New(NewConfig(testBasePath(t, minimalAppYAML)).WithExtension(override))
	require.NoError(t, err)
	defer k.Close()

	assert.Equal(t, []string{event.KernelBooted}, bus.events)
}

func TestContainerFrozenDuringBootHook(t *testing.T) {
	resetEnv(t)

	var setErr error
	ext := &funcExtension{
		boot: func(c *container.Container, cfg *Config) error {
			setErr = c.Set("late.service", func(c *container.Container) (any, error) {
				return nil, nil
			})
			return nil
		},
	}

	k, err := New(NewConfig(testBasePath(t, minimalAppYAML)).WithExtension(ext))
	require.NoError(t, err)
	defer k.Close()

	assert.ErrorIs(t, setErr, container.ErrCompiled)
}

func TestConfigureErrorAbortsBoot(t *testing.T) {
	resetEnv(t)

	boom := errors.New("configure exploded")
	ext := &funcExtension{
		configure: func(c *container.Container, cfg *Config) error { return boom },
	}

	_, err := New(NewConfig(testBasePath(t, minimalAppYAML)).WithExtension(ext))
	assert.ErrorIs(t, err, boom)
}

func TestBootErrorAbortsBoot(t *testing.T) {
	resetEnv(t)

	boom := errors.New("boot exploded")
	ext := &funcExtension{
		boot: func(c *container.Container, cfg *Config) error { return boom },
	}

	_, err := New(NewConfig(testBasePath(t, minimalAppYAML)).WithExtension(ext))
	assert.ErrorIs(t, err, boom)
}

func TestRunLifecycle(t *testing.T) {
	resetEnv(t)

	bus := &recordingBus{}
	stub := &stubRunner{}
	ext := &funcExtension{
		configure: func(c *container.Container, cfg *Config) error {
			if err := c.Set(ServiceEventBus, func(c *container.Container) (any, error) {
				return bus, nil
			}); err != nil {
				return err
			}
			return c.Set(ServiceRunner, func(c *container.Container) (any, error) {
				return runner.Runner(stub), nil
			})
		},
	}

	k, err := New(NewConfig(testBasePath(t, minimalAppYAML)).WithExtension(ext))
	require.NoError(t, err)
	defer k.Close()

	require.NoError(t, k.Run(context.Background()))

	assert.Equal(t, 1, stub.runs)
	assert.Equal(t, []string{
		event.KernelBooted,
		event.BeforeKernelRun,
		event.KernelTerminated,
	}, bus.events)
}

func TestRunnerTypeMismatchFailsRun(t *testing.T) {
	resetEnv(t)

	ext := &funcExtension{
		configure: func(c *container.Container, cfg *Config) error {
			return c.Set(ServiceRunner, func(c *container.Container) (any, error) {
				return "not a runner", nil
			})
		},
	}

	k, err := New(NewConfig(testBasePath(t, minimalAppYAML)).WithExtension(ext))
	require.NoError(t, err)
	defer k.Close()

	assert.Error(t, k.Run(context.Background()))
}

func TestManifestDiscoveryDuringBoot(t *testing.T) {
	resetEnv(t)

	dir := testBasePath(t, minimalAppYAML)
	appDir := filepath.Join(dir, AppDir)
	require.NoError(t, os.MkdirAll(filepath.Join(appDir, "bootstrap"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(appDir, "mailer.service.yaml"),
		[]byte("id: app.mailer\ndescription: outbound mail\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(appDir, "bootstrap", "hidden.service.yaml"),
		[]byte("id: app.hidden\n"), 0o644))

	k, err := New(NewConfig(dir))
	require.NoError(t, err)
	defer k.Close()

	assert.True(t, k.Container().Has("app.mailer"))
	assert.False(t, k.Container().Has("app.hidden"))
}

func TestBootAppliesServerConfigSection(t *testing.T) {
	resetEnv(t)

	yaml := "server:\n  host: 127.0.0.1\n  port: \"9091\"\n  gzip: false\n"
	k, err := New(NewConfig(testBasePath(t, yaml)))
	require.NoError(t, err)
	defer k.Close()

	httpCfg, err := container.Resolve[runner.Config](k.Container(), ServiceHTTPConfig)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", httpCfg.Host)
	assert.Equal(t, "9091", httpCfg.Port)
	assert.False(t, httpCfg.Gzip)

	// Defaults survive for keys the section does not set.
	assert.True(t, httpCfg.RateLimit.Enabled)
}

func TestContextResolvesFromContainer(t *testing.T) {
	resetEnv(t)

	k, err := New(NewConfig(testBasePath(t, minimalAppYAML)))
	require.NoError(t, err)
	defer k.Close()

	ctx, err := container.Resolve[*appconfig.Context](k.Container(), ServiceContext)
	require.NoError(t, err)
	assert.Same(t, k.Context(), ctx)
}
