// Package validate checks user-supplied values against networking semantics
// before they reach a device. All functions are pure: they take a raw string,
// and return either a normalized value or a *util.ValidationError naming the
// offending field. No validated value is semantically reinterpreted; the
// device remains the final authority on anything beyond well-formedness.
package validate

import (
	"encoding/binary"
	"net"
	"strconv"
	"strings"
	"unicode"

	"github.com/netauto-tools/netauto/pkg/util"
)

// IPv4 accepts exactly four dot-separated decimal octets, each 0-255.
// Returns the normalized dotted-quad form.
func IPv4(field, value string) (string, error) {
	quad, err := parseQuad(value)
	if err != nil {
		return "", util.FieldError(field, "%q is not a valid IPv4 address", value)
	}
	return quadString(quad), nil
}

// RouterID validates an OSPF router ID, which follows the IPv4 address rule.
func RouterID(field, value string) (string, error) {
	return IPv4(field, value)
}

// SubnetMask accepts a dotted-quad mask or a prefix length ("24" or "/24")
// and returns the dotted-decimal form. The bit pattern must be a contiguous
// run of ones followed by zeros; 255.0.255.0 is rejected.
func SubnetMask(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", util.FieldError(field, "subnet mask cannot be empty")
	}

	// Prefix-length form.
	if p := strings.TrimPrefix(v, "/"); !strings.Contains(p, ".") {
		ones, err := strconv.Atoi(p)
		if err != nil || ones < 0 || ones > 32 {
			return "", util.FieldError(field, "%q is not a valid prefix length", value)
		}
		return maskString(maskFor(ones)), nil
	}

	quad, err := parseQuad(v)
	if err != nil {
		return "", util.FieldError(field, "%q is not a valid subnet mask", value)
	}
	bits := binary.BigEndian.Uint32(quad[:])
	if !contiguous(bits) {
		return "", util.FieldError(field, "%q is not a contiguous subnet mask", value)
	}
	return quadString(quad), nil
}

// WildcardMask accepts any valid dotted quad. Wildcards carry complement
// semantics and may be discontiguous by design in OSPF network statements,
// so no contiguity check applies.
func WildcardMask(field, value string) (string, error) {
	quad, err := parseQuad(value)
	if err != nil {
		return "", util.FieldError(field, "%q is not a valid wildcard mask", value)
	}
	return quadString(quad), nil
}

// ProcessID validates an OSPF process ID (unsigned integer, >= 1).
func ProcessID(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 0, util.FieldError(field, "%q is not a valid OSPF process ID (must be >= 1)", value)
	}
	return n, nil
}

// Area validates an OSPF area ID (unsigned integer, >= 0).
func Area(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, util.FieldError(field, "%q is not a valid OSPF area (must be >= 0)", value)
	}
	return n, nil
}

// InterfaceName checks that a name is plausibly an interface reference:
// non-empty, starts with a letter, no whitespace. The name is passed through
// to the device otherwise untouched apart from normalized leading case
// (gigabitethernet0/0 -> Gigabitethernet0/0).
func InterfaceName(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", util.FieldError(field, "interface name cannot be empty")
	}
	runes := []rune(v)
	if !unicode.IsLetter(runes[0]) {
		return "", util.FieldError(field, "%q does not look like an interface name", value)
	}
	for _, r := range runes {
		if unicode.IsSpace(r) {
			return "", util.FieldError(field, "%q contains whitespace", value)
		}
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes), nil
}

// parseQuad parses exactly four dot-separated decimal octets.
func parseQuad(value string) ([4]byte, error) {
	var quad [4]byte
	parts := strings.Split(strings.TrimSpace(value), ".")
	if len(parts) != 4 {
		return quad, util.ErrValidationFailed
	}
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return quad, util.ErrValidationFailed
		}
		quad[i] = byte(n)
	}
	return quad, nil
}

func quadString(quad [4]byte) string {
	return net.IPv4(quad[0], quad[1], quad[2], quad[3]).String()
}

// contiguous reports whether bits is a run of ones followed by zeros.
func contiguous(bits uint32) bool {
	for ones := 0; ones <= 32; ones++ {
		if bits == maskFor(ones) {
			return true
		}
	}
	return false
}

func maskFor(ones int) uint32 {
	if ones == 0 {
		return 0
	}
	return ^uint32(0) << (32 - ones)
}

func maskString(bits uint32) string {
	var quad [4]byte
	binary.BigEndian.PutUint32(quad[:], bits)
	return quadString(quad)
}
