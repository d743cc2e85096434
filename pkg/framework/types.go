// Package framework provides the execution units of the daemon: Runnables
// started by a Runner, and a Loop running deferred Tasks.
package framework

import (
	"context"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Task is deferred work executed by a Loop. Tasks of the same Loop
// never run concurrently, and a Task is never re-entered.
type Task interface {
	RunTask(context.Context) error
}

// TaskFunc is the func form of Task.
type TaskFunc func(context.Context) error

// RunTask implements Task.
func (f TaskFunc) RunTask(ctx context.Context) error {
	return f(ctx)
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

// Trigger schedules work in another execution context.
// Implementations must never block the caller.
type Trigger interface {
	TriggerNext()
}
