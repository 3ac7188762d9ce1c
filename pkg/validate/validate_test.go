package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/netauto-tools/netauto/pkg/util"
)

func TestIPv4(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "valid host address", value: "192.168.50.10", want: "192.168.50.10"},
		{name: "all zeros", value: "0.0.0.0", want: "0.0.0.0"},
		{name: "broadcast", value: "255.255.255.255", want: "255.255.255.255"},
		{name: "surrounding whitespace", value: " 10.0.0.1 ", want: "10.0.0.1"},
		{name: "octet over 255", value: "192.168.1.256", wantErr: true},
		{name: "three fields", value: "10.0.0", wantErr: true},
		{name: "five fields", value: "1.2.3.4.5", wantErr: true},
		{name: "empty field", value: "10..0.1", wantErr: true},
		{name: "negative octet", value: "10.-1.0.1", wantErr: true},
		{name: "not a number", value: "a.b.c.d", wantErr: true},
		{name: "ipv6", value: "::1", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IPv4("ipv4", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IPv4(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("IPv4(%q) = %q, want %q", tt.value, got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, util.ErrValidationFailed) {
				t.Errorf("IPv4(%q) error should unwrap to ErrValidationFailed", tt.value)
			}
		})
	}
}

func TestIPv4ErrorNamesField(t *testing.T) {
	_, err := IPv4("destination", "10.0.0")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "destination") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestSubnetMask(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "/24 dotted", value: "255.255.255.0", want: "255.255.255.0"},
		{name: "/32 dotted", value: "255.255.255.255", want: "255.255.255.255"},
		{name: "/0 dotted", value: "0.0.0.0", want: "0.0.0.0"},
		{name: "/30 dotted", value: "255.255.255.252", want: "255.255.255.252"},
		{name: "/9 dotted", value: "255.128.0.0", want: "255.128.0.0"},
		{name: "prefix length bare", value: "24", want: "255.255.255.0"},
		{name: "prefix length slash", value: "/19", want: "255.255.224.0"},
		{name: "prefix zero", value: "0", want: "0.0.0.0"},
		{name: "prefix 32", value: "/32", want: "255.255.255.255"},
		{name: "non-contiguous", value: "255.0.255.0", wantErr: true},
		{name: "hole in run", value: "255.255.254.255", wantErr: true},
		{name: "ones after zeros", value: "0.255.0.0", wantErr: true},
		{name: "prefix too large", value: "/33", wantErr: true},
		{name: "prefix negative", value: "-1", wantErr: true},
		{name: "garbage", value: "mask", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubnetMask("subnet_mask", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SubnetMask(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("SubnetMask(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

// Exhaustive check: every contiguous mask is accepted and survives a
// round trip, every prefix length maps to its dotted form.
func TestSubnetMaskAllPrefixLengths(t *testing.T) {
	for ones := 0; ones <= 32; ones++ {
		dotted := maskString(maskFor(ones))
		got, err := SubnetMask("subnet_mask", dotted)
		if err != nil {
			t.Errorf("SubnetMask(%q) unexpected error: %v", dotted, err)
			continue
		}
		if got != dotted {
			t.Errorf("SubnetMask(%q) = %q, want %q", dotted, got, dotted)
		}
	}
}

func TestWildcardMask(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "host wildcard", value: "0.0.0.0", want: "0.0.0.0"},
		{name: "classic /24 wildcard", value: "0.0.0.255", want: "0.0.0.255"},
		{name: "discontiguous allowed", value: "0.255.0.255", want: "0.255.0.255"},
		{name: "all ones", value: "255.255.255.255", want: "255.255.255.255"},
		{name: "octet over 255", value: "0.0.0.256", wantErr: true},
		{name: "short", value: "0.0.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WildcardMask("wildcard", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WildcardMask(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("WildcardMask(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestProcessID(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "1", want: 1},
		{value: "65535", want: 65535},
		{value: "0", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "abc", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ProcessID("process_id", tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("ProcessID(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ProcessID(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "0", want: 0},
		{value: "51", want: 51},
		{value: "-1", wantErr: true},
		{value: "backbone", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Area("area", tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Area(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Area(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestRouterID(t *testing.T) {
	if _, err := RouterID("router_id", "1.1.1.1"); err != nil {
		t.Errorf("RouterID(1.1.1.1) unexpected error: %v", err)
	}
	if _, err := RouterID("router_id", "1.1.1"); err == nil {
		t.Error("RouterID(1.1.1) should be rejected")
	}
}

func TestInterfaceName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "typical", value: "GigabitEthernet0/0", want: "GigabitEthernet0/0"},
		{name: "normalizes leading case", value: "gigabitEthernet0/1", want: "GigabitEthernet0/1"},
		{name: "loopback", value: "Loopback0", want: "Loopback0"},
		{name: "subinterface", value: "GigabitEthernet0/0.100", want: "GigabitEthernet0/0.100"},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: "   ", wantErr: true},
		{name: "embedded space", value: "Gig 0/0", wantErr: true},
		{name: "leading digit", value: "0/0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InterfaceName("interface", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("InterfaceName(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("InterfaceName(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
