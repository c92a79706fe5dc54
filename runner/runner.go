// Package runner provides the application-runner contract and the
// default HTTP implementation driving the request/response cycle.
package runner

import "context"

// Runner drives the application's steady-state execution. It is resolved
// from the container and invoked once per Kernel.Run call.
type Runner interface {
	Run(ctx context.Context) error
}
