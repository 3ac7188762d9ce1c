package transport

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/netauto-tools/netauto/pkg/inventory"
	"github.com/netauto-tools/netauto/pkg/util"
)

var testDevice = inventory.Device{
	Name:     "R1",
	IP:       "192.0.2.1",
	Platform: inventory.PlatformCiscoIOS,
	Username: "admin",
}

var testCred = Credential{Username: "admin", Secret: "secret"}

// mockSession records calls and can be primed to fail.
type mockSession struct {
	sent       [][]string
	sentConfig [][]string
	output     string
	sendErr    error
	closeCount int
}

func (m *mockSession) Send(commands []string) (string, error) {
	m.sent = append(m.sent, commands)
	return m.output, m.sendErr
}

func (m *mockSession) SendConfig(commands []string) (string, error) {
	m.sentConfig = append(m.sentConfig, commands)
	return m.output, m.sendErr
}

func (m *mockSession) Close() error {
	m.closeCount++
	return nil
}

// mockDialer returns a fixed session or error.
type mockDialer struct {
	session *mockSession
	err     error
	dials   int
}

func (m *mockDialer) Dial(inventory.Device, Credential, time.Duration) (Session, error) {
	m.dials++
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func newTestConn(d Dialer) *Conn {
	return NewConn(d, util.Logger)
}

func TestOpenExecuteClose(t *testing.T) {
	sess := &mockSession{output: "ok"}
	conn := newTestConn(&mockDialer{session: sess})

	if got := conn.State(); got != StateIdle {
		t.Fatalf("initial state = %v, want idle", got)
	}

	if err := conn.Open(testDevice, testCred, time.Second); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if got := conn.State(); got != StateConnected {
		t.Fatalf("state after Open = %v, want connected", got)
	}

	out, err := conn.Execute([]string{"show ip interface brief"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out != "ok" {
		t.Errorf("Execute() output = %q", out)
	}
	if got := conn.State(); got != StateConnected {
		t.Errorf("state after Execute = %v, want connected", got)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if got := conn.State(); got != StateIdle {
		t.Errorf("state after Close = %v, want idle", got)
	}
	if sess.closeCount != 1 {
		t.Errorf("session closed %d times, want 1", sess.closeCount)
	}
}

func TestOpenTimeoutLeavesIdle(t *testing.T) {
	dialErr := fmt.Errorf("%w: dial tcp: i/o timeout", ErrTimeout)
	conn := newTestConn(&mockDialer{err: dialErr})

	err := conn.Open(testDevice, testCred, time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Open() error = %v, want ErrTimeout", err)
	}
	if got := conn.State(); got != StateIdle {
		t.Errorf("state after timeout = %v, want idle (never connected)", got)
	}
}

func TestOpenAuthFailureLeavesIdle(t *testing.T) {
	dialErr := fmt.Errorf("%w: ssh: unable to authenticate", ErrAuthFailed)
	dialer := &mockDialer{err: dialErr}
	conn := newTestConn(dialer)

	err := conn.Open(testDevice, testCred, time.Second)
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("Open() error = %v, want ErrAuthFailed", err)
	}
	if got := conn.State(); got != StateIdle {
		t.Errorf("state after auth failure = %v, want idle", got)
	}
	// Terminal for this attempt: no automatic retry.
	if dialer.dials != 1 {
		t.Errorf("dialer called %d times, want 1", dialer.dials)
	}
}

func TestOpenWhileOpenReturnsBusy(t *testing.T) {
	conn := newTestConn(&mockDialer{session: &mockSession{}})
	if err := conn.Open(testDevice, testCred, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := conn.Open(testDevice, testCred, time.Second); !errors.Is(err, ErrBusy) {
		t.Errorf("second Open() error = %v, want ErrBusy", err)
	}
}

func TestExecuteWithoutOpen(t *testing.T) {
	conn := newTestConn(&mockDialer{session: &mockSession{}})
	if _, err := conn.Execute([]string{"show version"}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Execute() error = %v, want ErrNotConnected", err)
	}
}

func TestExecuteTransportFailureTearsDown(t *testing.T) {
	sess := &mockSession{output: "partial output", sendErr: errors.New("connection reset")}
	conn := newTestConn(&mockDialer{session: sess})
	if err := conn.Open(testDevice, testCred, time.Second); err != nil {
		t.Fatal(err)
	}

	out, err := conn.Execute([]string{"show running-config"})
	if err == nil {
		t.Fatal("Execute() should propagate the transport error")
	}
	if out != "partial output" {
		t.Errorf("Execute() should return captured output, got %q", out)
	}
	if got := conn.State(); got != StateIdle {
		t.Errorf("state after transport failure = %v, want idle", got)
	}
	if sess.closeCount != 1 {
		t.Errorf("session closed %d times, want 1", sess.closeCount)
	}

	// Deferred Close after the failure must be a no-op.
	if err := conn.Close(); err != nil {
		t.Errorf("Close() after teardown error: %v", err)
	}
	if sess.closeCount != 1 {
		t.Errorf("session closed %d times after idempotent Close, want 1", sess.closeCount)
	}
}

func TestExecuteConfigRoutesToConfigMode(t *testing.T) {
	sess := &mockSession{output: "done"}
	conn := newTestConn(&mockDialer{session: sess})
	if err := conn.Open(testDevice, testCred, time.Second); err != nil {
		t.Fatal(err)
	}

	cmds := []string{"interface GigabitEthernet0/0", "no shutdown"}
	if _, err := conn.ExecuteConfig(cmds); err != nil {
		t.Fatalf("ExecuteConfig() error: %v", err)
	}
	if len(sess.sentConfig) != 1 || len(sess.sent) != 0 {
		t.Fatalf("config commands should go through SendConfig: sent=%d config=%d", len(sess.sent), len(sess.sentConfig))
	}
	if len(sess.sentConfig[0]) != 2 || sess.sentConfig[0][0] != cmds[0] {
		t.Errorf("SendConfig received %v", sess.sentConfig[0])
	}
}

func TestCloseIdempotent(t *testing.T) {
	sess := &mockSession{}
	conn := newTestConn(&mockDialer{session: sess})

	// Never opened.
	if err := conn.Close(); err != nil {
		t.Errorf("Close() on never-opened conn: %v", err)
	}

	if err := conn.Open(testDevice, testCred, time.Second); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := conn.Close(); err != nil {
			t.Errorf("Close() #%d error: %v", i+1, err)
		}
	}
	if sess.closeCount != 1 {
		t.Errorf("session closed %d times, want exactly 1", sess.closeCount)
	}
}

func TestClassifyDialError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "timeout message", err: errors.New("dial tcp 192.0.2.1:22: i/o timeout"), want: ErrTimeout},
		{name: "deadline", err: errors.New("context deadline exceeded"), want: ErrTimeout},
		{name: "ssh auth", err: errors.New("ssh: handshake failed: ssh: unable to authenticate, attempted methods [none password]"), want: ErrAuthFailed},
		{name: "permission denied", err: errors.New("permission denied (password)"), want: ErrAuthFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyDialError(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("classifyDialError(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyDialError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyDialErrorPassthrough(t *testing.T) {
	plain := errors.New("no route to host")
	got := classifyDialError(plain)
	if errors.Is(got, ErrTimeout) || errors.Is(got, ErrAuthFailed) {
		t.Errorf("unclassifiable error should pass through, got %v", got)
	}
}
