// Package container provides the dependency registry the kernel wires
// services into.
//
// The container holds parameter values and service definitions keyed by
// string identifiers. Definitions are factories resolved lazily; Compile
// is a one-way transition that freezes the registry and turns resolved
// registry. Resolved instances are memoized singletons; overriding a
// definition during the configure phase discards the instance built from
// the overridden one, so eager pre-compile resolutions are a reserve
// configuration, not the final one.
//
// Example Usage:
//
//	c := container.New()
//	c.Set("logger", func(c *container.Container) (any, error) {
//	    return logging.NewDefault(), nil
//	})
//	c.Compile()
//	logger, err := container.Resolve[*logging.Logger](c, "logger")
package container
