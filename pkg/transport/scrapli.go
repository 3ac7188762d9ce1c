package transport

import (
	"fmt"
	"strings"
	"time"

	"github.com/scrapli/scrapligo/driver/network"
	"github.com/scrapli/scrapligo/driver/options"
	"github.com/scrapli/scrapligo/platform"
	"github.com/scrapli/scrapligo/response"

	"github.com/netauto-tools/netauto/pkg/inventory"
)

// scrapliPlatforms maps inventory platforms onto scrapligo platform names.
var scrapliPlatforms = map[inventory.Platform]string{
	inventory.PlatformCiscoIOS: "cisco_iosxe",
}

// ScrapliDialer opens sessions through scrapligo's network drivers, which
// handle prompt detection, paging, and privilege levels for IOS-style CLIs.
// This is the default transport.
type ScrapliDialer struct{}

// Dial builds the platform driver and opens the connection.
func (d *ScrapliDialer) Dial(device inventory.Device, cred Credential, timeout time.Duration) (Session, error) {
	name, ok := scrapliPlatforms[device.Platform]
	if !ok {
		return nil, fmt.Errorf("unsupported platform %q", device.Platform)
	}

	p, err := platform.NewPlatform(
		name,
		device.IP,
		options.WithAuthNoStrictKey(),
		options.WithAuthUsername(cred.Username),
		options.WithAuthPassword(cred.Secret),
		options.WithTimeoutOps(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("scrapli platform %s: %w", name, err)
	}

	driver, err := p.GetNetworkDriver()
	if err != nil {
		return nil, fmt.Errorf("scrapli driver: %w", err)
	}

	if err := driver.Open(); err != nil {
		return nil, classifyDialError(fmt.Errorf("scrapli open %s: %w", device.IP, err))
	}
	return &scrapliSession{driver: driver}, nil
}

type scrapliSession struct {
	driver *network.Driver
}

func (s *scrapliSession) Send(commands []string) (string, error) {
	resp, err := s.driver.SendCommands(commands)
	if err != nil {
		return joinResponses(resp), fmt.Errorf("scrapli send: %w", err)
	}
	return joinResponses(resp), nil
}

func (s *scrapliSession) SendConfig(commands []string) (string, error) {
	resp, err := s.driver.SendConfigs(commands)
	if err != nil {
		return joinResponses(resp), fmt.Errorf("scrapli send configs: %w", err)
	}
	return joinResponses(resp), nil
}

func (s *scrapliSession) Close() error {
	return s.driver.Close()
}

// joinResponses concatenates per-command results into one raw output blob.
func joinResponses(resp *response.MultiResponse) string {
	if resp == nil {
		return ""
	}
	var out strings.Builder
	for i, r := range resp.Responses {
		out.WriteString(r.Result)
		if i < len(resp.Responses)-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}
