package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/desklift/pkg/actuator"
	"github.com/robotalks/desklift/pkg/command"
	fx "github.com/robotalks/desklift/pkg/framework"
	"github.com/robotalks/desklift/pkg/metrics"
	"github.com/robotalks/desklift/pkg/ringbuf"
)

type fakeActuator struct {
	moves []command.Command
	fn    func(command.Command) error
}

func (a *fakeActuator) Move(cmd command.Command) error {
	a.moves = append(a.moves, cmd)
	if a.fn != nil {
		return a.fn(cmd)
	}
	return nil
}

type countTrigger int

func (t *countTrigger) TriggerNext() {
	*t++
}

func nextEvent(t *testing.T, ch <-chan actuator.Event) actuator.Event {
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("expect pin event timeout")
	}
	return actuator.Event{}
}

func TestExecuteInArrivalOrder(t *testing.T) {
	mock := clock.NewMock()
	evCh := make(chan actuator.Event, 64)
	rec := actuator.NewRecorder(mock)
	rec.Notify = evCh
	d := New(DefaultQueueSize, rec.Lift())

	for _, b := range []byte{10, 246, 128} {
		_, err := d.Submit(b)
		require.NoError(t, err)
	}

	loop := fx.NewLoop()
	loop.Clock = mock
	loop.Add(d)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	expected := []struct {
		pin string
		d   time.Duration
	}{
		{actuator.PinUp, 100 * time.Millisecond},
		{actuator.PinDown, 100 * time.Millisecond},
		{actuator.PinDown, 1280 * time.Millisecond},
	}
	var lastRest time.Time
	for _, exp := range expected {
		var asserted actuator.Event
		for n := 0; n < 3; n++ {
			asserted = nextEvent(t, evCh)
		}
		require.Equal(t, exp.pin, asserted.Pin)
		require.True(t, asserted.High)
		require.False(t, asserted.Time.Before(lastRest), "motions overlap")

		mock.Add(exp.d)
		var rest actuator.Event
		for n := 0; n < 3; n++ {
			rest = nextEvent(t, evCh)
		}
		require.Equal(t, actuator.PinStatus, rest.Pin)
		require.True(t, rest.High)
		require.Equal(t, exp.d, rest.Time.Sub(asserted.Time))
		lastRest = rest.Time
	}

	select {
	case ev := <-evCh:
		t.Fatalf("unexpected event %s", ev)
	case <-time.After(20 * time.Millisecond):
	}
	require.Equal(t, 0, d.Pending())
}

func TestQueueFull(t *testing.T) {
	act := &fakeActuator{}
	d := New(DefaultQueueSize, act)
	d.Metrics = metrics.New(nil)
	var trigger countTrigger
	d.Trigger = &trigger

	for n := 0; n < DefaultQueueSize; n++ {
		cmd, err := d.Submit(byte(n))
		require.NoError(t, err)
		require.Equal(t, command.Decode(byte(n)), cmd)
	}
	require.Equal(t, DefaultQueueSize, d.Pending())

	cmd, err := d.Submit(100)
	require.Equal(t, ErrQueueFull, err)
	require.True(t, errors.Is(err, ringbuf.ErrFull))
	require.Equal(t, command.Decode(100), cmd)

	cmd, ok, err := d.Step()
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, command.Decode(0), cmd)

	_, err = d.Submit(101)
	require.NoError(t, err)

	require.NoError(t, d.Drain(context.Background()))
	require.Len(t, act.moves, DefaultQueueSize+1)
	for n := 0; n < DefaultQueueSize; n++ {
		require.Equal(t, command.Decode(byte(n)), act.moves[n])
	}
	require.Equal(t, command.Decode(101), act.moves[DefaultQueueSize])

	require.Equal(t, DefaultQueueSize+1, int(trigger))
	require.Equal(t, float64(DefaultQueueSize+1), testutil.ToFloat64(d.Metrics.CommandsQueued))
	require.Equal(t, 1.0, testutil.ToFloat64(d.Metrics.CommandsDropped))
	require.Equal(t, 0.0, testutil.ToFloat64(d.Metrics.QueueDepthGauge))
}

func TestStepEmpty(t *testing.T) {
	d := New(1, &fakeActuator{})
	_, ok, err := d.Step()
	require.False(t, ok)
	require.NoError(t, err)
}

func TestDrainKeepsGoingOnError(t *testing.T) {
	errStuck := errors.New("stuck")
	act := &fakeActuator{fn: func(cmd command.Command) error {
		if cmd.Direction() == command.Down {
			return errStuck
		}
		return nil
	}}
	d := New(4, act)
	d.Metrics = metrics.New(nil)
	for _, b := range []byte{1, 0xff, 2} {
		_, err := d.Submit(b)
		require.NoError(t, err)
	}
	require.NoError(t, d.Drain(context.Background()))
	require.Len(t, act.moves, 3)
	require.Equal(t, 1.0, testutil.ToFloat64(d.Metrics.ActuationErrors))
	require.Equal(t, 2.0, testutil.ToFloat64(d.Metrics.CommandsExecuted.WithLabelValues("up")))
}

func TestDrainStopsBetweenCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	act := &fakeActuator{fn: func(command.Command) error {
		cancel()
		return nil
	}}
	d := New(4, act)
	for _, b := range []byte{1, 2, 3} {
		_, err := d.Submit(b)
		require.NoError(t, err)
	}
	require.Equal(t, context.Canceled, d.Drain(ctx))
	require.Len(t, act.moves, 1)
	require.Equal(t, 2, d.Pending())
	require.NoError(t, d.RunTask(ctx))
}

func TestConfigQueueSize(t *testing.T) {
	conf := NewConfig()
	require.Equal(t, DefaultQueueSize, conf.QueueSize)
	conf.QueueSize = 3
	require.Equal(t, 3, conf.NewDispatcher(&fakeActuator{}).Cap())
	conf.QueueSize = 0
	require.Equal(t, DefaultQueueSize, conf.NewDispatcher(&fakeActuator{}).Cap())
}

type blockingActuator struct {
	startedCh chan command.Command
	releaseCh chan struct{}
}

func (a *blockingActuator) Move(cmd command.Command) error {
	a.startedCh <- cmd
	<-a.releaseCh
	return nil
}

func TestQueueHoldsExecutingCommand(t *testing.T) {
	act := &blockingActuator{
		startedCh: make(chan command.Command, 1),
		releaseCh: make(chan struct{}),
	}
	d := New(DefaultQueueSize, act)
	for n := 0; n < DefaultQueueSize; n++ {
		_, err := d.Submit(byte(n))
		require.NoError(t, err)
	}

	doneCh := make(chan command.Command, 1)
	go func() {
		cmd, _, _ := d.Step()
		doneCh <- cmd
	}()
	require.Equal(t, command.Decode(0), <-act.startedCh)

	_, err := d.Submit(100)
	require.True(t, errors.Is(err, ErrQueueFull))
	require.Equal(t, DefaultQueueSize, d.Pending())

	close(act.releaseCh)
	require.Equal(t, command.Decode(0), <-doneCh)
	require.Equal(t, DefaultQueueSize-1, d.Pending())
	_, err = d.Submit(100)
	require.NoError(t, err)
}
