package link

import (
	"context"
	"errors"
	"io"
	"os"
)

// Client sends commands to a lift.
type Client struct {
	ReadWriter io.ReadWriter
	// Ack expects one status byte back for every byte sent. Reads must
	// time out, otherwise a missing status blocks Send.
	Ack bool
}

// NewClient creates a Client.
func NewClient(rw io.ReadWriter, ack bool) *Client {
	return &Client{ReadWriter: rw, Ack: ack}
}

// Send writes the command bytes in order. Without Ack, all bytes are
// written at once. With Ack, bytes are written one at a time and Send
// stops at the first command not accepted.
func (c *Client) Send(ctx context.Context, cmds []byte) error {
	if !c.Ack {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := c.ReadWriter.Write(cmds)
		return err
	}
	status := make([]byte, 1)
	for n, b := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := c.ReadWriter.Write([]byte{b}); err != nil {
			return err
		}
		if err := c.readStatus(status); err != nil {
			return err
		}
		switch status[0] {
		case StatusOK:
		case StatusRejected:
			return &RejectedError{Index: n, Byte: b}
		default:
			return &StatusError{Index: n, Status: status[0]}
		}
	}
	return nil
}

func (c *Client) readStatus(p []byte) error {
	n, err := c.ReadWriter.Read(p)
	if err != nil {
		if os.IsTimeout(err) || errors.Is(err, io.EOF) {
			return ErrNoAck
		}
		return err
	}
	if n == 0 {
		return ErrNoAck
	}
	return nil
}
