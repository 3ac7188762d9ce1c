package transport

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/netauto-tools/netauto/pkg/inventory"
)

// State is the connection lifecycle state.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateExecuting
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateExecuting:
		return "executing"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Conn manages one transport session to one device at a time. The mutex
// enforces at most one connected/executing session per Conn, and the state
// machine is:
//
//	Idle -> Connecting -> Connected -> Executing -> Connected -> Closing -> Idle
//
// with Connecting -> Idle on handshake failure and
// Executing -> Closing -> Idle on any execution-time transport failure.
type Conn struct {
	dialer Dialer
	log    logrus.FieldLogger

	mu      sync.Mutex
	state   State
	session Session
}

// NewConn creates a connection manager over the given dialer.
func NewConn(dialer Dialer, log logrus.FieldLogger) *Conn {
	return &Conn{dialer: dialer, log: log, state: StateIdle}
}

// Open dials and authenticates. On handshake timeout the returned error
// unwraps to ErrTimeout; on credential rejection, to ErrAuthFailed. Both are
// terminal for this attempt (no retry) and leave the state Idle.
func (c *Conn) Open(device inventory.Device, cred Credential, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return ErrBusy
	}

	c.state = StateConnecting
	c.log.WithField("device", device.Name).Debugf("connecting to %s", device.IP)

	session, err := c.dialer.Dial(device, cred, timeout)
	if err != nil {
		c.state = StateIdle
		return err
	}

	c.session = session
	c.state = StateConnected
	c.log.WithField("device", device.Name).Debug("connected")
	return nil
}

// Execute sends exec-mode commands in order and returns the combined raw
// output. Only callable from Connected. A transport error mid-sequence
// aborts the remaining commands; whatever output was captured is returned
// alongside the error, and the session is torn down.
func (c *Conn) Execute(commands []string) (string, error) {
	return c.run(commands, false)
}

// ExecuteConfig is Execute for configuration-mode command sequences.
func (c *Conn) ExecuteConfig(commands []string) (string, error) {
	return c.run(commands, true)
}

func (c *Conn) run(commands []string, config bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected {
		return "", ErrNotConnected
	}
	c.state = StateExecuting

	var output string
	var err error
	if config {
		output, err = c.session.SendConfig(commands)
	} else {
		output, err = c.session.Send(commands)
	}
	if err != nil {
		// Transport failure mid-sequence: tear the session down now so the
		// device side is not left holding a half-used channel.
		c.closeLocked()
		return output, err
	}

	c.state = StateConnected
	return output, nil
}

// Close releases the transport session. It is idempotent: closing an
// already-closed or never-opened Conn is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Conn) closeLocked() error {
	if c.session == nil {
		c.state = StateIdle
		return nil
	}
	c.state = StateClosing
	err := c.session.Close()
	c.session = nil
	c.state = StateIdle
	return err
}

// State reports the current lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
