package container

import "fmt"

// Resolve fetches a service by identifier and checks its runtime type.
// A mismatch is reported as an error rather than a panic, so callers can
// abort boot with a useful message.
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T

	instance, err := c.Get(id)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("service %q is %T, not %T", id, instance, zero)
	}
	return typed, nil
}

// ResolveParameter fetches a parameter by name and checks its type.
func ResolveParameter[T any](c *Container, name string) (T, error) {
	var zero T

	val, ok := c.Parameter(name)
	if !ok {
		return zero, fmt.Errorf("parameter %q not set", name)
	}

	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("parameter %q is %T, not %T", name, val, zero)
	}
	return typed, nil
}
