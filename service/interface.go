// Package service orders the startup and shutdown of engine systems
package service

// Service is an engine system with an explicit lifecycle
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration, no side effects on worlds
//  3. Start() - system becomes running, peers get created
//  4. [frames]
//  5. Stop() - peers released; must be idempotent
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies names the services that must start before this one
	Dependencies() []string

	// Init receives the arguments passed to Hub.InitAll
	// Services pick the argument types they understand and ignore the rest
	Init(args ...any) error

	Start() error

	Stop() error
}

// Arg returns the first argument of type T
func Arg[T any](args []any) (T, bool) {
	for _, a := range args {
		if v, ok := a.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
