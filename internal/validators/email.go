package validators

import (
	"net"
	"strings"
)

// mailHost extracts the domain part of an address. The local part may
// itself contain "@" when quoted, so the split is on the last one.
func mailHost(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}

// IsEmailDomainValid reports whether the address points at a domain
// that can receive mail. An MX record is authoritative; domains that
// deliver straight to an A/AAAA host pass on the address fallback.
func IsEmailDomainValid(email string) bool {
	host, ok := mailHost(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(host); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(host)
	return err == nil && len(ips) > 0
}
