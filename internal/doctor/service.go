package doctor

import (
	"context"
	"net"
	"strconv"
	"strings"

	"github.com/Aman-CERP/devdoctor/internal/config"
)

// CheckService verifies that a container named like svc is up and that
// localhost:<port> accepts a TCP connection. The port is only probed when
// the container reports "Up". It reports whether the service is healthy.
func CheckService(ctx context.Context, p Probes, svc config.ServiceSpec) (bool, Findings) {
	check := "service:" + svc.Name

	statuses, err := p.Containers.Statuses(ctx, svc.Name)
	if err != nil {
		return false, Findings{issuef(check, "Error checking %s: %v", svc.Name, err)}
	}

	if !anyUp(statuses) {
		return false, Findings{
			issuef(check, "Docker service %s is not running", svc.Name),
			suggestionf(check, "Start service: docker-compose up -d %s", svc.Name),
			suggestionf(check, "Check logs: docker-compose logs %s", svc.Name),
		}
	}

	p.progress("Service %s is running, checking port %d", svc.Name, svc.Port)
	addr := net.JoinHostPort("localhost", strconv.Itoa(svc.Port))
	if err := p.Net.Dial(ctx, addr, p.dialTimeout()); err != nil {
		return false, Findings{
			issuef(check, "Service %s not responding on port %d", svc.Name, svc.Port),
			suggestionf(check, "Check service health: docker inspect %s", svc.Name),
			suggestionf(check, "View logs: docker logs %s", svc.Name),
			suggestionf(check, "Search: '%s docker port %d not accessible'", svc.Name, svc.Port),
		}
	}

	p.progress("Service %s is healthy", svc.Name)
	return true, nil
}

func anyUp(statuses []string) bool {
	for _, s := range statuses {
		if strings.Contains(s, "Up") {
			return true
		}
	}
	return false
}
