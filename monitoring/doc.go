/*
Package monitoring provides Prometheus metrics for the kernel lifecycle
and the HTTP runner.

# Overview

Each collector owns its own registry, so multiple kernels can coexist in
one process. Tracked series cover HTTP requests (latency, throughput,
sizes), kernel boot duration, per-extension hook durations, dispatched
lifecycle events, recovered panics, and uptime.

# Usage

	metrics := monitoring.New()

	// Add middleware to the Gin engine
	engine.Use(monitoring.Middleware(metrics))

	// Expose the scrape endpoint
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Time an extension hook
	timer := monitoring.NewHookTimer(metrics, "database", "configure")
	// ... run hook ...
	timer.Stop()
*/
package monitoring
