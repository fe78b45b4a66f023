// Package validate holds the pure field validators and the registry-driven
// configuration validator. Everything here is stateless: a predicate over a
// string/number, no I/O, safe to call concurrently.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

// domainRE: dotted hostname with a 2+ letter TLD. IPv6 literals are not
// validated by this package (known limitation, callers are told so).
var domainRE = regexp.MustCompile(`^(?i:[a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

// PortInRange reports whether n is a valid TCP port.
func PortInRange(n int) bool { return n >= 1 && n <= 65535 }

// IsPort reports whether s coerces to an integer in [1, 65535].
func IsPort(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return PortInRange(n)
}

// IsUUID matches the canonical 8-4-4-4-12 hexadecimal form, case-insensitive.
func IsUUID(s string) bool {
	return govalidator.IsUUID(strings.TrimSpace(s))
}

// IsDomainOrIPv4 matches either a dotted hostname with a 2+ letter TLD or a
// dotted-quad IPv4 address.
func IsDomainOrIPv4(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if govalidator.IsIPv4(s) {
		return true
	}
	return domainRE.MatchString(s)
}

// IsJSONText accepts the empty string ("no value supplied") and otherwise
// requires s to parse as JSON.
func IsJSONText(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	return govalidator.IsJSON(s)
}

// IsPositiveNumber reports whether s coerces to a finite number > 0.
func IsPositiveNumber(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f > 0
}
