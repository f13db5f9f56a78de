package discord

import (
	"net"
	"net/http"
	"strings"
)

// localNets are the ranges we skip when walking proxy header chains; a
// forwarded-for entry inside one of these is a hop, not the user.
var localNets []*net.IPNet

func init() {
	for _, cidr := range []string{"127.0.0.1/8", "10.0.0.0/8", "169.254.0.0/16", "172.16.0.0/12", "192.168.0.0/16", "::1/128", "fc00::/7"} {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		localNets = append(localNets, network)
	}
}

func isLocal(addr string) bool {
	ip := net.ParseIP(addr)
	for _, network := range localNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// requestIP returns a best guess at the IP a login request came from,
// preferring proxy-set headers over the socket address. It only feeds log
// fields on the login and callback handlers; nothing authorization-relevant
// hangs off it.
func requestIP(r *http.Request) string {
	for _, addr := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		addr = strings.TrimSpace(addr)
		if addr == "" || isLocal(addr) {
			continue
		}
		return addr
	}
	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}
	// strip any port off the socket address
	addr := strings.TrimSpace(r.RemoteAddr)
	if lastColon := strings.LastIndex(addr, ":"); lastColon != -1 {
		return addr[:lastColon]
	}
	return addr
}
