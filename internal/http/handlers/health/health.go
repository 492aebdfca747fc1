// Package health serves GET /health and GET /health/{path_echo}.
//
// The body reports the time, the host's IPv4 address, and echoes the
// optional ?echo= query value and {path_echo} path segment back verbatim.
package health

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/utils/request"
	"github.com/aanand-mishra/campus-api/internal/utils/response"
)

// TimestampLayout is UTC ISO-8601 with microseconds and a Z suffix,
// e.g. 2025-09-14T18:03:07.123456Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FallbackIP is reported when the hostname has no IPv4 address.
const FallbackIP = "127.0.0.1"

// Checker builds health responses. The zero value uses the wall clock and
// resolves the local hostname.
type Checker struct {
	Now       func() time.Time
	ResolveIP func(ctx context.Context) string
}

// New handles both health routes; r.PathValue("path_echo") is empty on
// the bare /health route.
func (c Checker) New() http.HandlerFunc {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	resolve := c.ResolveIP
	if resolve == nil {
		resolve = HostIP
	}

	return func(w http.ResponseWriter, r *http.Request) {
		h := types.Health{
			Status:        http.StatusOK,
			StatusMessage: "OK",
			Timestamp:     now().UTC().Format(TimestampLayout),
			IPAddress:     resolve(r.Context()),
			Echo:          request.QueryString(r.URL.Query(), "echo"),
		}
		if pathEcho := r.PathValue("path_echo"); pathEcho != "" {
			h.PathEcho = &pathEcho
		}

		slog.Debug("health check", slog.String("ip_address", h.IPAddress))
		response.WriteJSON(w, http.StatusOK, h)
	}
}

// HostIP returns the first IPv4 address of this machine's hostname, or
// FallbackIP.
func HostIP(ctx context.Context) string {
	host, err := os.Hostname()
	if err != nil {
		return FallbackIP
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil || len(ips) == 0 {
		return FallbackIP
	}
	return ips[0].String()
}
