// Package urlguard validates outbound URLs against server-side request
// forgery. Every network call whose target is not a fixed upstream must pass
// Validate first.
package urlguard

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
)

// Profile is a named SSRF policy. External is for third-party endpoints such
// as webhooks: https only, nothing loopback. UserServer is for a server the
// user operates themselves: plain http is tolerated, but only towards
// loopback names, so local development still works.
type Profile struct {
	name          string
	allowLoopback bool
}

var (
	External   = Profile{name: "external"}
	UserServer = Profile{name: "user_server", allowLoopback: true}
)

var ErrInvalidURL = errors.New("invalid URL")

var internalTLDs = []string{".local", ".internal", ".corp", ".lan"}

// Validate checks rawURL against the profile and returns nil if it is safe
// to call. The returned error carries the first violated rule as a
// user-presentable reason with no secret material.
func Validate(rawURL string, profile Profile) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}

	host := normalizeHostname(u.Hostname())
	if host == "" {
		return ErrInvalidURL
	}

	isLoopbackName := host == "localhost" || strings.HasSuffix(host, ".localhost")

	if u.Scheme != "https" {
		if !profile.allowLoopback {
			return errors.New("only https targets are allowed")
		}

		if !isLoopbackName && !isLoopbackAddress(host) {
			return errors.New("http is only allowed towards a loopback address")
		}
	}

	if isLoopbackName && !profile.allowLoopback {
		return errors.New("loopback hostnames are not allowed")
	}

	if looksLikeIPv4(host) {
		return validateIPv4(host, profile)
	}

	if strings.Contains(host, ":") {
		return validateIPv6(host, profile)
	}

	for _, tld := range internalTLDs {
		if strings.HasSuffix(host, tld) {
			return fmt.Errorf("hostnames under %s are not allowed", tld)
		}
	}

	return nil
}

// normalizeHostname strips IPv6 brackets and any zone-id suffix, and
// lowercases the result.
func normalizeHostname(host string) string {
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	if i := strings.IndexByte(host, '%'); i >= 0 {
		host = host[:i]
	}

	return strings.ToLower(host)
}

func looksLikeIPv4(host string) bool {
	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return false
	}

	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return false
			}
		}
	}

	return true
}

func validateIPv4(host string, profile Profile) error {
	octets := make([]int, 0, 4)
	for _, p := range strings.Split(host, ".") {
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			// An out-of-range octet means the name is neither a valid
			// address nor a resolvable hostname. Treat as malformed.
			return ErrInvalidURL
		}
		octets = append(octets, n)
	}

	isLoopback := octets[0] == 127
	if isLoopback {
		if !profile.allowLoopback {
			return fmt.Errorf("address %s is loopback", host)
		}
		return nil
	}

	switch {
	case octets[0] == 10,
		octets[0] == 172 && octets[1] >= 16 && octets[1] <= 31,
		octets[0] == 192 && octets[1] == 168,
		octets[0] == 169 && octets[1] == 254,
		octets[0] == 0:
		return fmt.Errorf("address %s is in a private or reserved range", host)
	}

	return nil
}

func validateIPv6(host string, profile Profile) error {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return ErrInvalidURL
	}

	// IPv4-mapped literals must not bypass the IPv4 range rules.
	if addr.Is4In6() {
		return validateIPv4(addr.Unmap().String(), profile)
	}

	if addr.IsLoopback() {
		if !profile.allowLoopback {
			return fmt.Errorf("address %s is loopback", host)
		}
		return nil
	}

	normalized := addr.String()
	if strings.HasPrefix(normalized, "fc") || strings.HasPrefix(normalized, "fd") {
		return fmt.Errorf("address %s is a unique-local address", host)
	}

	if strings.HasPrefix(normalized, "fe80") {
		return fmt.Errorf("address %s is a link-local address", host)
	}

	return nil
}

// isLoopbackAddress reports whether host is a literal loopback IP.
func isLoopbackAddress(host string) bool {
	if looksLikeIPv4(host) {
		return strings.HasPrefix(host, "127.")
	}

	addr, err := netip.ParseAddr(host)
	return err == nil && addr.IsLoopback()
}
