package scan

import (
	"fmt"
	"regexp"
)

// descriptor holds everything the engine knows about one entity type: a
// permissive discovery pattern, a strict semantic validator and the priority
// used to arbitrate overlapping matches of different types.
type descriptor struct {
	pattern  *regexp.Regexp
	validate func(string) bool
	priority int
}

// typeOrder fixes the scan order. It doubles as the tie-break for candidates
// with equal start, priority and length: the stable resolver sort keeps
// discovery order, so IPv4 candidates win over IPv6 ones on the (theoretical)
// identical span, because IPV4 is scanned first.
var typeOrder = []EntityType{TypeURL, TypeEmail, TypeIPv4, TypeIPv6, TypeDomain}

// Discovery patterns are deliberately loose, cheap first-pass filters; the
// validators in validators.go enforce full semantic correctness afterwards.
var (
	urlPattern    = regexp.MustCompile(`\bhttps?://[^\s<>"']+[^\s<>"'.,;:!?)\]]`)
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	ipv4Pattern   = regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)
	ipv6Pattern   = regexp.MustCompile(`\b[A-Fa-f0-9]{1,4}(?::[A-Fa-f0-9]{0,4}){2,7}\b|::(?:[A-Fa-f0-9]{1,4}(?::[A-Fa-f0-9]{1,4})*)?`)
	domainPattern = regexp.MustCompile(`\b(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,63}\b`)
)

func defaultRegistry() map[EntityType]descriptor {
	return map[EntityType]descriptor{
		TypeURL:    {pattern: urlPattern, validate: validURL, priority: 5},
		TypeEmail:  {pattern: emailPattern, validate: validEmail, priority: 4},
		TypeIPv4:   {pattern: ipv4Pattern, validate: validIPv4, priority: 3},
		TypeIPv6:   {pattern: ipv6Pattern, validate: validIPv6, priority: 3},
		TypeDomain: {pattern: domainPattern, validate: validDomain, priority: 2},
	}
}

// checkRegistry guards against a half-configured descriptor table. A missing
// pattern or validator is a programming error and fatal at construction time.
func checkRegistry(registry map[EntityType]descriptor) error {
	for _, entityType := range typeOrder {
		desc, ok := registry[entityType]
		if !ok {
			return fmt.Errorf("scan: no descriptor registered for type %s", entityType)
		}
		if desc.pattern == nil {
			return fmt.Errorf("scan: type %s has no discovery pattern", entityType)
		}
		if desc.validate == nil {
			return fmt.Errorf("scan: type %s has no validator", entityType)
		}
		if desc.priority <= 0 {
			return fmt.Errorf("scan: type %s has invalid priority %d", entityType, desc.priority)
		}
	}
	return nil
}
