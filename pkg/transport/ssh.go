package transport

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/netauto-tools/netauto/pkg/inventory"
)

// SSHDialer opens plain SSH sessions via golang.org/x/crypto/ssh. It is the
// fallback transport for devices the scrapli platform set does not cover.
type SSHDialer struct {
	// Port defaults to 22 when zero.
	Port int
}

// Dial connects and authenticates with password auth.
func (d *SSHDialer) Dial(device inventory.Device, cred Credential, timeout time.Duration) (Session, error) {
	port := d.Port
	if port == 0 {
		port = 22
	}

	config := &ssh.ClientConfig{
		User: cred.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(cred.Secret),
		},
		// Network devices rarely have stable host keys across reimages.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(device.IP, strconv.Itoa(port))
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, classifyDialError(fmt.Errorf("ssh dial %s: %w", addr, err))
	}
	return &sshSession{client: client}, nil
}

type sshSession struct {
	client *ssh.Client
}

// Send runs each exec-mode command in its own SSH session and concatenates
// the combined output. A failure aborts the remaining commands; the output
// captured so far is returned with the error.
func (s *sshSession) Send(commands []string) (string, error) {
	var out strings.Builder
	for _, cmd := range commands {
		session, err := s.client.NewSession()
		if err != nil {
			return out.String(), fmt.Errorf("ssh session: %w", err)
		}
		combined, err := session.CombinedOutput(cmd)
		session.Close()
		out.Write(combined)
		if !bytes.HasSuffix(combined, []byte("\n")) {
			out.WriteByte('\n')
		}
		if err != nil && len(combined) == 0 {
			return out.String(), fmt.Errorf("ssh exec %q: %w", cmd, err)
		}
	}
	return out.String(), nil
}

// SendConfig pushes a configuration-mode sequence through an interactive
// shell with a PTY, wrapping the commands in configure terminal / end.
// IOS-style CLIs do not accept config commands over plain exec channels.
func (s *sshSession) SendConfig(commands []string) (string, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("ssh session: %w", err)
	}
	defer session.Close()

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("vt100", 80, 500, modes); err != nil {
		return "", fmt.Errorf("ssh pty: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("ssh stdin: %w", err)
	}

	var buf bytes.Buffer
	session.Stdout = &buf
	session.Stderr = &buf

	if err := session.Shell(); err != nil {
		return "", fmt.Errorf("ssh shell: %w", err)
	}

	lines := make([]string, 0, len(commands)+4)
	lines = append(lines, "terminal length 0", "configure terminal")
	lines = append(lines, commands...)
	lines = append(lines, "end", "exit")
	for _, line := range lines {
		if _, err := io.WriteString(stdin, line+"\n"); err != nil {
			return buf.String(), fmt.Errorf("ssh write %q: %w", line, err)
		}
		// The CLI echoes prompts between lines; give it a beat.
		time.Sleep(200 * time.Millisecond)
	}
	stdin.Close()

	err = session.Wait()
	if buf.Len() > 0 {
		return buf.String(), nil
	}
	if err != nil {
		return "", fmt.Errorf("ssh config session: %w", err)
	}
	return buf.String(), nil
}

func (s *sshSession) Close() error {
	return s.client.Close()
}
