package framework

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"
)

// DefaultInterval is the polling interval of a Loop.
const DefaultInterval = 100 * time.Millisecond

// Loop is a cooperative execution context. It runs all registered Tasks
// one after another, on every Interval tick and whenever TriggerNext is
// called. A Task running long delays the next iteration rather than
// being preempted.
type Loop struct {
	Interval time.Duration
	Clock    clock.Clock

	tasks []Task
	lock  sync.Mutex

	wakeUpCh chan struct{}
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{
		Interval: DefaultInterval,
		Clock:    clock.New(),
		wakeUpCh: make(chan struct{}, 1),
	}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddTask registers tasks in execution order.
func (l *Loop) AddTask(tasks ...Task) *Loop {
	l.lock.Lock()
	l.tasks = append(l.tasks, tasks...)
	l.lock.Unlock()
	return l
}

// TriggerNext schedules the next iteration to be executed immediately
// after the current one. It never blocks, and multiple triggers before
// the next iteration collapse into one.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	clk := l.Clock
	if clk == nil {
		clk = clock.New()
	}
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := clk.Ticker(interval)
	defer ticker.Stop()

	// pick up whatever was triggered before the loop started.
	l.runIteration(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.runIteration(ctx)
		case <-l.wakeUpCh:
			l.runIteration(ctx)
		}
	}
}

// RunOnce executes a single iteration synchronously.
func (l *Loop) RunOnce(ctx context.Context) {
	l.runIteration(ctx)
}

func (l *Loop) runIteration(ctx context.Context) {
	l.lock.Lock()
	tasks := l.tasks
	l.lock.Unlock()
	for _, task := range tasks {
		if err := task.RunTask(ctx); err != nil {
			glog.Errorf("task error: %v", err)
		}
	}
}
