package scan

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// ErrInvalidAddress is returned when a (host, local id) pair cannot identify
// a registrable entity.
var ErrInvalidAddress = errors.New("scan: invalid entity address")

// ValidateAddress checks a (host, local id) pair against the same rules the
// scanner applies to discovered text. The host must be a domain name or IP
// literal; a non-empty local id additionally has to satisfy the mailbox rules.
func ValidateAddress(host, localID string) error {
	if localID != "" {
		if !validEmail(localID + "@" + host) {
			return ErrInvalidAddress
		}
		return nil
	}
	if validDomain(host) || validIPv4(host) || validIPv6(host) {
		return nil
	}
	return ErrInvalidAddress
}

const (
	maxDomainLength = 253
	maxLabelLength  = 63
	maxLocalLength  = 64
)

// validDomain enforces the rules the discovery pattern skips: label lengths,
// hyphen placement, an alphabetic TLD, IDNA validity and a recognized ICANN
// suffix. Requiring a real suffix keeps file names like "index.html" and
// internal host names out of the results.
func validDomain(value string) bool {
	if len(value) == 0 || len(value) > maxDomainLength {
		return false
	}

	labels := strings.Split(value, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if !validLabel(label) {
			return false
		}
	}

	tld := labels[len(labels)-1]
	if len(tld) < 2 || !isAlpha(tld) {
		return false
	}

	if _, err := idna.Lookup.ToASCII(value); err != nil {
		return false
	}

	suffix, icann := publicsuffix.PublicSuffix(strings.ToLower(value))
	return icann && suffix != "" && len(suffix) < len(value)
}

func validLabel(label string) bool {
	if len(label) == 0 || len(label) > maxLabelLength {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if !isAlphaNum(c) && c != '-' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// validEmail splits on the last "@" and reuses the domain rules for the host
// part.
func validEmail(value string) bool {
	at := strings.LastIndex(value, "@")
	if at <= 0 || at == len(value)-1 {
		return false
	}

	local := value[:at]
	if len(local) > maxLocalLength {
		return false
	}
	if local[0] == '.' || local[len(local)-1] == '.' || strings.Contains(local, "..") {
		return false
	}

	return validDomain(value[at+1:])
}

// validIPv4 confirms the dotted quad actually is one: four octets, each 0-255,
// no leading zeros.
func validIPv4(value string) bool {
	if strings.Count(value, ".") != 3 {
		return false
	}
	ip := net.ParseIP(value)
	return ip != nil && ip.To4() != nil
}

// validIPv6 accepts well-formed compressed or expanded addresses.
func validIPv6(value string) bool {
	if !strings.Contains(value, ":") {
		return false
	}
	ip := net.ParseIP(value)
	return ip != nil && ip.To4() == nil
}

// validURL rejects malformed scheme/authority combinations the permissive
// pattern lets through. The host must be a valid domain name or IP address.
func validURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}

	if ip := net.ParseIP(host); ip != nil {
		return true
	}
	return validDomain(host)
}
