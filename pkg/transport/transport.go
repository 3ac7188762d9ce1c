// Package transport owns the command-line transport session to a network
// device: dialing, authentication, ordered command execution, and the
// guarantee that the session is released on every exit path.
package transport

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/netauto-tools/netauto/pkg/inventory"
)

// Sentinel errors for connection failure classification.
var (
	ErrTimeout      = errors.New("connection timed out")
	ErrAuthFailed   = errors.New("authentication rejected by device")
	ErrNotConnected = errors.New("session not connected")
	ErrBusy         = errors.New("a session is already open")
)

// Credential is a username/secret pair held in memory for the duration of
// one session only. It is never persisted.
type Credential struct {
	Username string
	Secret   string
}

// String redacts the secret so a Credential can never leak through logging.
func (c Credential) String() string {
	return fmt.Sprintf("{Username:%s Secret:<redacted>}", c.Username)
}

// Session is a live, authenticated command channel to one device.
// Send issues exec-mode commands; SendConfig issues configuration-mode
// commands. Both return the combined raw output, including whatever was
// captured before a mid-sequence failure.
type Session interface {
	Send(commands []string) (string, error)
	SendConfig(commands []string) (string, error)
	Close() error
}

// Dialer opens an authenticated Session to a device. Implementations
// classify handshake failures with ErrTimeout / ErrAuthFailed.
type Dialer interface {
	Dial(device inventory.Device, cred Credential, timeout time.Duration) (Session, error)
}

// NewDialer returns the dialer for the named transport ("scrapli" or "ssh").
func NewDialer(name string) (Dialer, error) {
	switch name {
	case "scrapli", "":
		return &ScrapliDialer{}, nil
	case "ssh":
		return &SSHDialer{}, nil
	default:
		return nil, fmt.Errorf("unknown transport %q (want scrapli or ssh)", name)
	}
}

var authMarkers = []string{
	"unable to authenticate",
	"authentication failed",
	"permission denied",
	"bad password",
}

var timeoutMarkers = []string{
	"timed out",
	"timeout",
	"deadline exceeded",
}

// classifyDialError maps a raw dial/handshake error onto the sentinel it
// represents. Timeouts are detected via net.Error first, then by message;
// credential rejections by the transport library's wording.
func classifyDialError(err error) error {
	if err == nil {
		return nil
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	msg := strings.ToLower(err.Error())
	for _, m := range timeoutMarkers {
		if strings.Contains(msg, m) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
	}
	for _, m := range authMarkers {
		if strings.Contains(msg, m) {
			return fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
	}
	return err
}
