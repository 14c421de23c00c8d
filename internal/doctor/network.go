package doctor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/Aman-CERP/devdoctor/internal/config"
)

// CheckNetwork dials every host in order. Unreachable hosts are warnings,
// never issues. A host whose name does not resolve gets a single
// "Failed to check" warning without suggestions.
func CheckNetwork(ctx context.Context, p Probes, hosts []config.HostSpec) Findings {
	var findings Findings
	for _, h := range hosts {
		p.progress("Checking connectivity to %s:%d (%s)", h.Host, h.Port, h.Service)
		findings = append(findings, checkHost(ctx, p, h)...)
	}
	return findings
}

func checkHost(ctx context.Context, p Probes, h config.HostSpec) Findings {
	check := "network:" + h.Host

	if strings.TrimSpace(h.Host) == "" || h.Port <= 0 || h.Port > 65535 {
		return Findings{warningf(check, "Failed to check %s: %v", h.Host,
			fmt.Errorf("invalid address %q port %d", h.Host, h.Port))}
	}

	addr := net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
	if err := p.Net.Dial(ctx, addr, p.dialTimeout()); err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return Findings{warningf(check, "Failed to check %s: %v", h.Host, err)}
		}
		return Findings{
			warningf(check, "Cannot connect to %s (%s)", h.Host, h.Service),
			suggestionf(check, "Check if %s is blocked by firewall", h.Host),
			suggestionf(check, "Try: ping %s", h.Host),
			suggestionf(check, "Search: '%s connection refused %s'", h.Host, hostOS),
		}
	}
	return nil
}
