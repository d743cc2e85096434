// Package link provides the serial boundary of the desk lift.
package link

// The wire carries one unframed byte per command, host to lift. There is
// no sequence, checksum or retransmission: a byte lost on the wire is a
// lost command.
//
// Optionally the lift echoes one status byte per received byte, so a host
// can tell accepted commands from those dropped on a full queue.
//
// Producer: host (Client)
// Consumer: lift daemon (Receiver)
