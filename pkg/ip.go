package pkg

import (
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

var (
	localDockerIpRegex = regexp.MustCompile(`^172\.\d{1,3}\.0\.1$`)
)

// IPIsLocal reports whether the addr comes from local development
// (loopback or the docker bridge gateway).
func IPIsLocal(ipAddr string) bool {
	if ipAddr == "127.0.0.1" || ipAddr == "::1" {
		return true
	}
	return localDockerIpRegex.MatchString(ipAddr)
}

// ReadUserIP returns the client IP. The X-Real-Ip and X-Forwarded-For headers
// set by nginx are only read when trustProxyHeaders is true, otherwise the
// connection address is used. Local development addresses are all collapsed
// into "localhost".
func ReadUserIP(r *http.Request, trustProxyHeaders bool) (string, error) {
	var ipAddr string
	if trustProxyHeaders {
		ipAddr = r.Header.Get("X-Real-Ip")
		if ipAddr == "" {
			// client, proxy1, proxy2 ...
			ipAddr, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
			ipAddr = strings.TrimSpace(ipAddr)
		}
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}

	if net.ParseIP(ipAddr) == nil {
		return "", fmt.Errorf("ip addr %s is invalid", ipAddr)
	}

	if IPIsLocal(ipAddr) {
		return "localhost", nil
	}

	return ipAddr, nil
}
