// Package errhandler routes throwables raised during request handling to
// a pluggable renderer.
//
// A Handler wraps one renderer and a debug flag. The Manager owns the
// single active-handler slot: activating a handler disables the previous
// one, so exactly one handler is registered at steady state. The kernel
// installs a minimal reserve handler during the pre-compile boot window
// and swaps in the container-resolved handler once compilation is done.
package errhandler
