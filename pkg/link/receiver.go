package link

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/desklift/pkg/command"
	"github.com/robotalks/desklift/pkg/metrics"
)

// Sink accepts decoded bytes. Submit must not block.
type Sink interface {
	Submit(byte) (command.Command, error)
}

// SubmitFunc is func type of Sink.
type SubmitFunc func(byte) (command.Command, error)

// Submit implements Sink.
func (f SubmitFunc) Submit(b byte) (command.Command, error) {
	return f(b)
}

// Receiver reads command bytes and hands them to Sink.
type Receiver struct {
	ReadWriter io.ReadWriter
	Sink       Sink
	Metrics    *metrics.Metrics
	// Ack echoes StatusOK or StatusRejected for every byte.
	Ack bool
	// ReadTimeout is set to true if ReadWriter already supports timeout
	// with Read. A timeout is then reported as an error satisfying
	// os.IsTimeout, as io.EOF or as an empty read.
	ReadTimeout bool
}

// NewReceiver creates a Receiver.
func NewReceiver(rw io.ReadWriter, sink Sink) *Receiver {
	return &Receiver{ReadWriter: rw, Sink: sink}
}

// Name implements framework.Named.
func (r *Receiver) Name() string {
	return "receiver"
}

// Run receives bytes until ctx is done or reading fails.
func (r *Receiver) Run(ctx context.Context) error {
	if r.ReadTimeout {
		buf := make([]byte, 1)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				n, err := r.ReadWriter.Read(buf)
				if err != nil {
					if os.IsTimeout(err) || errors.Is(err, io.EOF) {
						continue
					}
					return err
				}
				if n == 0 {
					continue
				}
				if err = r.receive(buf[0]); err != nil {
					return err
				}
			}
		}
	}

	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go r.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			if err := r.receive(b); err != nil {
				return err
			}
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Receiver) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		n, err := r.ReadWriter.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n == 0 {
			continue
		}
		select {
		case byteCh <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

func (r *Receiver) receive(b byte) error {
	r.Metrics.ByteReceived()
	status := StatusOK
	cmd, err := r.Sink.Submit(b)
	if err != nil {
		glog.Warningf("drop %s: %v", cmd, err)
		status = StatusRejected
	} else {
		glog.V(2).Infof("received %s", cmd)
	}
	if r.Ack {
		if _, err := r.ReadWriter.Write([]byte{status}); err != nil {
			return err
		}
	}
	return nil
}
