package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/hearthstack/hearth/container"
	"github.com/hearthstack/hearth/kernel"
)

// welcomeExtension registers the demo routes on the shared engine during
// the boot phase, once the container is compiled.
type welcomeExtension struct{}

func (e *welcomeExtension) Configure(c *container.Container, cfg *kernel.Config) error {
	return nil
}

func (e *welcomeExtension) Boot(c *container.Container, cfg *kernel.Config) error {
	engine, err := container.Resolve[*gin.Engine](c, kernel.ServiceRouter)
	if err != nil {
		return err
	}

	env, err := container.ResolveParameter[string](c, kernel.ParamEnvironment)
	if err != nil {
		return err
	}

	engine.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"service":     "hearth",
			"environment": env,
		})
	})
	return nil
}

func main() {
	basePath := flag.String("base", ".", "Application base path")
	configFile := flag.String("config", "", "Additional config file (relative to base path)")
	flag.Parse()

	cfg := kernel.NewConfig(*basePath).
		WithExtension(&welcomeExtension{})
	if *configFile != "" {
		cfg.WithConfigFile(*configFile)
	}

	k, err := kernel.New(cfg)
	if err != nil {
		log.Fatalf("Failed to boot kernel: %v", err)
	}
	defer k.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := k.Run(ctx); err != nil {
		log.Fatalf("Kernel run failed: %v", err)
	}
}
