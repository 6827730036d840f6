package probe

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"strings"
	"time"
)

const (
	DNSResolves    = "RESOLVES"
	DNSNoARecord   = "NO_A_RECORD"
	DNSNXDomain    = "NXDOMAIN"
	DNSServFail    = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName = "INVALID_NAME"
	DNSIPLiteral   = "IP_LITERAL"
)

// DNSStatus is what the DOWN log line reports about a target's name.
type DNSStatus struct {
	Domain        string
	Class         string
	Addresses     int
	CNAME         string
	Nameservers   []string
	ResolverError string
}

type resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
}

var dnsTimeout = 3 * time.Second

// Diagnose tells apart a name that does not resolve from a host that resolves
// but does not answer pings.
func Diagnose(ctx context.Context, host string) DNSStatus {
	return diagnose(ctx, net.DefaultResolver, host)
}

func diagnose(ctx context.Context, r resolver, host string) DNSStatus {
	s := DNSStatus{Domain: strings.TrimSuffix(strings.TrimSpace(host), ".")}
	switch {
	case s.Domain == "" || ValidateHost(s.Domain) != nil:
		s.Class = DNSInvalidName
		return s
	case isIPLiteral(s.Domain):
		// nothing to resolve; the address itself is unreachable
		s.Class = DNSIPLiteral
		s.Addresses = 1
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()

	addrs, err := r.LookupIPAddr(ctx, s.Domain)
	if err == nil && len(addrs) > 0 {
		s.Class = DNSResolves
		s.Addresses = len(addrs)
		if cname, err := r.LookupCNAME(ctx, s.Domain); err == nil {
			if cname = strings.TrimSuffix(cname, "."); !strings.EqualFold(cname, s.Domain) {
				s.CNAME = cname
			}
		}
		return s
	}
	if err != nil {
		s.ResolverError = err.Error()
	}
	s.Class = classifyLookupErr(err)

	// A delegated zone without address records is a different fault than a missing name.
	if s.Class != DNSServFail {
		if ns, err := r.LookupNS(ctx, s.Domain); err == nil && len(ns) > 0 {
			for _, n := range ns {
				s.Nameservers = append(s.Nameservers, strings.TrimSuffix(n.Host, "."))
			}
			s.Class = DNSNoARecord
		}
	}
	return s
}

func classifyLookupErr(err error) string {
	var de *net.DNSError
	switch {
	case err == nil:
		// lookup succeeded with zero addresses
		return DNSNXDomain
	case errors.As(err, &de) && de.IsNotFound:
		return DNSNXDomain
	default:
		return DNSServFail
	}
}

func isIPLiteral(host string) bool {
	_, err := netip.ParseAddr(host)
	return err == nil
}
