// Package dispatch moves decoded commands from the byte reception context
// to the actuator, strictly in arrival order and one motion at a time.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/desklift/pkg/command"
	fx "github.com/robotalks/desklift/pkg/framework"
	"github.com/robotalks/desklift/pkg/metrics"
	"github.com/robotalks/desklift/pkg/ringbuf"
)

// DefaultQueueSize is the number of pending commands held by default.
const DefaultQueueSize = 64

var (
	// ErrQueueFull indicates a command was dropped because the pending
	// command queue is at capacity.
	ErrQueueFull = fmt.Errorf("command queue full: %w", ringbuf.ErrFull)
)

// Actuator executes a single command to completion.
type Actuator interface {
	Move(command.Command) error
}

// Dispatcher owns the pending command queue.
//
// Submit is the producer side and must only be called from a single
// goroutine. Step and Drain are the consumer side and must only be called
// from another single goroutine, normally a framework.Loop via AddToLoop.
type Dispatcher struct {
	Actuator Actuator
	Metrics  *metrics.Metrics
	Trigger  fx.Trigger

	queue    *ringbuf.RingBuf
	producer *ringbuf.Producer
	consumer *ringbuf.Consumer
}

// New creates a Dispatcher holding up to capacity pending commands.
func New(capacity int, act Actuator) *Dispatcher {
	q := ringbuf.New(capacity)
	d := &Dispatcher{Actuator: act, queue: q}
	d.producer, d.consumer = q.Split()
	return d
}

// Cap returns the capacity of the pending command queue.
func (d *Dispatcher) Cap() int {
	return d.queue.Cap()
}

// Pending returns the number of outstanding commands, including the one
// being executed.
func (d *Dispatcher) Pending() int {
	return d.queue.Len()
}

// Submit decodes b and queues the command. It never blocks. If the queue
// is full the command is dropped and ErrQueueFull is returned.
func (d *Dispatcher) Submit(b byte) (command.Command, error) {
	cmd := command.Decode(b)
	if err := d.producer.Push(cmd.Byte()); err != nil {
		d.Metrics.CommandDropped()
		return cmd, ErrQueueFull
	}
	d.Metrics.CommandQueued(d.queue.Len())
	if t := d.Trigger; t != nil {
		t.TriggerNext()
	}
	return cmd, nil
}

// Step executes the oldest pending command. ok is false if nothing was
// pending. err is the actuator error, if any. The command keeps its queue
// slot until the motion completes.
func (d *Dispatcher) Step() (cmd command.Command, ok bool, err error) {
	b, ok := d.consumer.Peek()
	if !ok {
		return 0, false, nil
	}
	cmd = command.Decode(b)
	done := d.Metrics.ActuationStarted(cmd.Direction().String())
	err = d.Actuator.Move(cmd)
	done(err)
	d.consumer.Discard()
	d.Metrics.QueueDepth(d.consumer.Len())
	return cmd, true, err
}

// Drain executes pending commands until the queue is empty or ctx is
// done. A running command is never interrupted: ctx is only checked
// between commands. Actuator errors are logged and don't stop draining.
func (d *Dispatcher) Drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, ok, err := d.Step()
		if !ok {
			return nil
		}
		if err != nil {
			glog.Errorf("execute %s: %v", cmd, err)
			continue
		}
		glog.V(2).Infof("executed %s", cmd)
	}
}

// RunTask implements framework.Task.
func (d *Dispatcher) RunTask(ctx context.Context) error {
	err := d.Drain(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// AddToLoop implements framework.LoopAdder. The loop becomes the consumer
// context and is woken up on every queued command.
func (d *Dispatcher) AddToLoop(l *fx.Loop) {
	d.Trigger = l
	l.AddTask(d)
}
