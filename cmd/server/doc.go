// Package main is a reference host for the hearth bootstrap kernel.
//
// It builds a kernel configuration, boots the kernel, and runs the
// default HTTP application runner until SIGINT/SIGTERM.
//
// Usage:
//
//	# Boot from the current directory
//	./server
//
//	# Boot an application rooted elsewhere with an extra config file
//	./server -base /srv/app -config config/prod.toml
//
// Environment:
//   - APP_ENV: running mode (default "prod")
//   - APP_DEBUG: "1" enables debug mode
//
// Dotenv files (.env, .env.dev, .env.local) under the base path are
// loaded when present.
package main
