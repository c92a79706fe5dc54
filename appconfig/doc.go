// Package appconfig provides the application configuration surface: the
// environment-derived runtime settings, the merged config-file values,
// and the runtime context the kernel threads through boot.
package appconfig
