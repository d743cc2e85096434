package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunnerStopsAllOnFailure(t *testing.T) {
	errBroken := errors.New("port unplugged")
	r := NewRunner()
	r.Go(
		NamedRun("blocking", RunnableFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
		NamedRun("failing", RunnableFunc(func(ctx context.Context) error {
			return errBroken
		})),
	)
	errCh := make(chan error, 1)
	go func() { errCh <- r.Wait() }()
	select {
	case err := <-errCh:
		require.Error(t, err)
		require.True(t, errors.Is(err, errBroken))
		require.Equal(t, errBroken.Error(), err.Error())
	case <-time.After(time.Second):
		t.Fatal("runner didn't stop")
	}
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner()
	r.Go(RunnableFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	r.Stop()
	require.NoError(t, r.Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	e1, e2 := errors.New("one"), errors.New("two")
	err := errs.Add(e1, nil, e2).Aggregate()
	require.Error(t, err)
	require.True(t, errors.Is(err, e2))
	require.Equal(t, "Multiple errors:\none\ntwo", err.Error())
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	unblock := make(chan struct{})
	var closed int
	closer := closerFunc(func() error {
		closed++
		close(unblock)
		return nil
	})
	go cancel()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-unblock
		return errors.New("closed")
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, closed)
}
