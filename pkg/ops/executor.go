package ops

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/netauto-tools/netauto/pkg/audit"
	"github.com/netauto-tools/netauto/pkg/backup"
	"github.com/netauto-tools/netauto/pkg/inventory"
	"github.com/netauto-tools/netauto/pkg/transport"
	"github.com/netauto-tools/netauto/pkg/util"
	"github.com/netauto-tools/netauto/pkg/validate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultPingCount = 5
)

// deviceErrorMarkers are the rejection prefixes IOS-style CLIs print when a
// command is syntactically or semantically refused.
var deviceErrorMarkers = []string{
	"% invalid input",
	"% incomplete command",
	"% ambiguous command",
	"% unknown command",
	"% unrecognized command",
}

var pingRateRe = regexp.MustCompile(`Success rate is (\d+) percent`)

// Executor runs the supported operations against inventory devices. It owns
// the Connection Manager; every operation is a single open/execute/close
// cycle and the session is released on all exit paths. Credentials are taken
// per call and never retained.
type Executor struct {
	conn      *transport.Conn
	store     *backup.Store
	log       logrus.FieldLogger
	events    audit.Logger
	timeout   time.Duration
	pingCount int
}

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout bounds the transport handshake and per-command execution.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithPingCount sets the default ping repeat count.
func WithPingCount(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.pingCount = n
		}
	}
}

// WithEventLogger sets the sink receiving one event per operation attempt.
func WithEventLogger(l audit.Logger) Option {
	return func(e *Executor) { e.events = l }
}

// NewExecutor creates an executor dialing through the given transport and
// saving backups to store. The log sink is injected rather than ambient;
// nil falls back to the package-wide logger.
func NewExecutor(dialer transport.Dialer, store *backup.Store, log logrus.FieldLogger, opts ...Option) *Executor {
	if log == nil {
		log = util.Logger
	}
	e := &Executor{
		conn:      transport.NewConn(dialer, log),
		store:     store,
		log:       log,
		events:    audit.NopLogger{},
		timeout:   defaultTimeout,
		pingCount: defaultPingCount,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ConfigureInterface assigns an IPv4 address to an interface and enables it.
func (e *Executor) ConfigureInterface(device inventory.Device, cred transport.Credential, name, ipv4, mask string) Result {
	start := time.Now()

	ifName, err := validate.InterfaceName("interface_name", name)
	if err != nil {
		return e.finish(device, KindConfigureInterface, start, validationResult(err))
	}
	addr, err := validate.IPv4("ipv4", ipv4)
	if err != nil {
		return e.finish(device, KindConfigureInterface, start, validationResult(err))
	}
	netmask, err := validate.SubnetMask("subnet_mask", mask)
	if err != nil {
		return e.finish(device, KindConfigureInterface, start, validationResult(err))
	}

	commands := []string{
		"interface " + ifName,
		fmt.Sprintf("ip address %s %s", addr, netmask),
		"no shutdown",
	}
	raw, err := e.execute(device, cred, commands, true)
	return e.finish(device, KindConfigureInterface, start, classify(raw, err))
}

// ShowStatus runs the interface summary query. No mutation; the raw output
// is the result.
func (e *Executor) ShowStatus(device inventory.Device, cred transport.Credential) Result {
	start := time.Now()
	raw, err := e.execute(device, cred, []string{"show ip interface brief"}, false)
	return e.finish(device, KindShowStatus, start, classify(raw, err))
}

// Ping tests reachability of target from the device. An unreachable target
// is not an error: the operation succeeded, the detail reports the outcome.
func (e *Executor) Ping(device inventory.Device, cred transport.Credential, target string, count int) Result {
	start := time.Now()

	addr, err := validate.IPv4("destination", target)
	if err != nil {
		return e.finish(device, KindPing, start, validationResult(err))
	}
	if count <= 0 {
		count = e.pingCount
	}

	raw, err := e.execute(device, cred, []string{fmt.Sprintf("ping %s repeat %d", addr, count)}, false)
	res := classify(raw, err)
	if res.Status == StatusSuccess {
		res.Detail = pingDetail(raw)
	}
	return e.finish(device, KindPing, start, res)
}

// Backup captures the running configuration and persists it as a timestamped
// artifact. The artifact is non-nil only on success.
func (e *Executor) Backup(device inventory.Device, cred transport.Credential) (Result, *backup.Artifact) {
	start := time.Now()

	raw, err := e.execute(device, cred, []string{"show running-config"}, false)
	res := classify(raw, err)
	if res.Status != StatusSuccess {
		return e.finish(device, KindBackup, start, res), nil
	}

	artifact, err := e.store.Save(device.Name, raw)
	if err != nil {
		res = Result{Status: StatusFilesystemError, RawOutput: raw, Detail: err.Error()}
		return e.finish(device, KindBackup, start, res), nil
	}

	res.Detail = "saved to " + artifact.Path
	return e.finish(device, KindBackup, start, res), artifact
}

// ConfigureOSPF sets up an OSPF process with a router ID and one
// network/wildcard/area statement.
func (e *Executor) ConfigureOSPF(device inventory.Device, cred transport.Credential, params OSPFParams) Result {
	start := time.Now()

	processID, err := validate.ProcessID("process_id", params.ProcessID)
	if err != nil {
		return e.finish(device, KindConfigureOSPF, start, validationResult(err))
	}
	routerID, err := validate.RouterID("router_id", params.RouterID)
	if err != nil {
		return e.finish(device, KindConfigureOSPF, start, validationResult(err))
	}
	network, err := validate.IPv4("network", params.Network)
	if err != nil {
		return e.finish(device, KindConfigureOSPF, start, validationResult(err))
	}
	wildcard, err := validate.WildcardMask("wildcard", params.Wildcard)
	if err != nil {
		return e.finish(device, KindConfigureOSPF, start, validationResult(err))
	}
	area, err := validate.Area("area", params.Area)
	if err != nil {
		return e.finish(device, KindConfigureOSPF, start, validationResult(err))
	}

	commands := []string{
		fmt.Sprintf("router ospf %d", processID),
		"router-id " + routerID,
		fmt.Sprintf("network %s %s area %d", network, wildcard, area),
	}
	raw, err := e.execute(device, cred, commands, true)
	return e.finish(device, KindConfigureOSPF, start, classify(raw, err))
}

// Do dispatches a tagged-variant request to the matching operation. A
// request whose parameter variant does not match its kind is a validation
// error; no transport is touched.
func (e *Executor) Do(device inventory.Device, cred transport.Credential, req Request) Result {
	switch req.Kind {
	case KindConfigureInterface:
		if req.Interface == nil {
			return e.badRequest(device, req.Kind, "missing interface parameters")
		}
		return e.ConfigureInterface(device, cred, req.Interface.Name, req.Interface.IPv4, req.Interface.Mask)
	case KindShowStatus:
		return e.ShowStatus(device, cred)
	case KindPing:
		if req.Ping == nil {
			return e.badRequest(device, req.Kind, "missing ping parameters")
		}
		return e.Ping(device, cred, req.Ping.Target, req.Ping.Count)
	case KindBackup:
		res, _ := e.Backup(device, cred)
		return res
	case KindConfigureOSPF:
		if req.OSPF == nil {
			return e.badRequest(device, req.Kind, "missing OSPF parameters")
		}
		return e.ConfigureOSPF(device, cred, *req.OSPF)
	default:
		return e.badRequest(device, req.Kind, fmt.Sprintf("unknown operation kind %q", req.Kind))
	}
}

func (e *Executor) badRequest(device inventory.Device, kind Kind, detail string) Result {
	return e.finish(device, kind, time.Now(), Result{Status: StatusValidationError, Detail: detail})
}

// execute performs the single session cycle for one operation. The deferred
// Close covers every exit path; Conn.Close is idempotent, so a teardown
// already done by a mid-sequence failure is not repeated.
func (e *Executor) execute(device inventory.Device, cred transport.Credential, commands []string, config bool) (string, error) {
	if err := e.conn.Open(device, cred, e.timeout); err != nil {
		return "", err
	}
	defer e.conn.Close()

	if config {
		return e.conn.ExecuteConfig(commands)
	}
	return e.conn.Execute(commands)
}

// finish logs the attempt, emits the audit event, and returns the result.
// Every operation attempt ends here exactly once, success or not.
func (e *Executor) finish(device inventory.Device, kind Kind, start time.Time, res Result) Result {
	entry := e.log.WithFields(logrus.Fields{
		"device":    device.Name,
		"operation": string(kind),
		"status":    string(res.Status),
	})
	if res.Status == StatusSuccess {
		entry.Info("operation completed")
	} else {
		entry.WithField("detail", res.Detail).Warn("operation failed")
	}

	event := audit.NewEvent(device.Name, string(kind)).
		WithStatus(string(res.Status)).
		WithDetail(res.Detail).
		WithDuration(time.Since(start))
	if err := e.events.Log(event); err != nil {
		e.log.Warnf("recording operation event: %v", err)
	}
	return res
}

func validationResult(err error) Result {
	return Result{Status: StatusValidationError, Detail: err.Error()}
}

// classify maps transport errors and device-side rejections onto statuses.
// The invariant: StatusSuccess only when the session connected and the whole
// sequence completed without transport error or device rejection.
func classify(raw string, err error) Result {
	if err != nil {
		switch {
		case errors.Is(err, transport.ErrTimeout):
			return Result{Status: StatusTimeout, RawOutput: raw, Detail: err.Error()}
		case errors.Is(err, transport.ErrAuthFailed):
			return Result{Status: StatusAuthError, RawOutput: raw, Detail: err.Error()}
		default:
			return Result{Status: StatusExecutionError, RawOutput: raw, Detail: err.Error()}
		}
	}
	if msg := deviceError(raw); msg != "" {
		return Result{Status: StatusExecutionError, RawOutput: raw, Detail: msg}
	}
	return Result{Status: StatusSuccess, RawOutput: raw}
}

// deviceError returns the device's own rejection line, if any. The message
// is preserved as-is; the executor does not interpret or correct it.
func deviceError(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, marker := range deviceErrorMarkers {
			if strings.HasPrefix(lower, marker) {
				return strings.TrimSpace(line)
			}
		}
	}
	return ""
}

// pingDetail distinguishes "target did not respond" from "command failed to
// run": unreachability is a detail, never an error status.
func pingDetail(raw string) string {
	m := pingRateRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	if m[1] == "0" {
		return "target unreachable (success rate 0 percent)"
	}
	return fmt.Sprintf("target reachable (success rate %s percent)", m[1])
}
