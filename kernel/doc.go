/*
Package kernel is the boot orchestrator: it assembles the service
container, loads environment and configuration files, installs the error
handler, drives the two-phase extension lifecycle around the container's
compile point, and delegates steady-state execution to the application
runner.

# Boot Sequence

New runs a strict linear sequence; the first fault aborts construction:

 1. Load dotenv files (missing files skipped)
 2. Build the container with the bootstrap parameters
 3. Register default service definitions and discover app manifests
 4. Apply application configuration (locale propagation)
 5. Activate the reserve error handler
 6. Run every extension's Configure hook
 7. Compile the container
 8. Run every extension's Boot hook
 9. Activate the container-resolved error handler
 10. Initialize the event system
 11. Dispatch kernel.booted

# Usage

	cfg := kernel.NewConfig("/srv/app").
	    WithExtensions(&database.Extension{}, &api.Extension{})

	k, err := kernel.New(cfg)
	if err != nil {
	    log.Fatalf("boot failed: %v", err)
	}
	defer k.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := k.Run(ctx); err != nil {
	    log.Fatalf("run failed: %v", err)
	}
*/
package kernel
