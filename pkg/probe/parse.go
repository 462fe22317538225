package probe

import (
	"regexp"
	"strings"
)

var (
	netshSSIDRe      = regexp.MustCompile(`(?i)^\s*SSID\s*:\s*(.+?)\s*$`)
	ipconfigPPPRe    = regexp.MustCompile(`(?i)^\s*PPP\s+adapter\s+(.+?)\s*:\s*$`)
	airportNetworkRe = regexp.MustCompile(`(?i)^\s*Current (?:Wi-Fi|AirPort) Network:\s*(.+?)\s*$`)
	scutilConnRe     = regexp.MustCompile(`\(Connected\).*?"([^"]+)"`)
	tunnelPrefixes   = []string{"ppp", "tun", "tap", "wg"}
)

// matchLines returns the first submatch of re on every line of out.
func matchLines(out string, re *regexp.Regexp) []string {
	found := []string{}
	for _, line := range splitLines(out) {
		if m := re.FindStringSubmatch(line); m != nil && m[1] != "" {
			found = append(found, strings.TrimSpace(m[1]))
		}
	}
	return found
}

func splitLines(out string) []string {
	out = strings.ReplaceAll(out, "\r\n", "\n")
	return strings.Split(out, "\n")
}

// parseNetshSSIDs reads `netsh wlan show interfaces`. BSSID lines do not
// match because the pattern is anchored at the start of the line.
func parseNetshSSIDs(out string) []string {
	return matchLines(out, netshSSIDRe)
}

// parseIpconfigPPP reads `ipconfig` adapter headers such as
// "PPP adapter Corp VPN:".
func parseIpconfigPPP(out string) []string {
	return matchLines(out, ipconfigPPPRe)
}

// parseNmcliSSIDs reads `nmcli -t -f active,ssid dev wifi`, keeping the
// active rows. nmcli escapes colons inside fields with a backslash.
func parseNmcliSSIDs(out string) []string {
	found := []string{}
	for _, line := range splitLines(out) {
		active, ssid, ok := strings.Cut(line, ":")
		if !ok || active != "yes" {
			continue
		}
		ssid = strings.ReplaceAll(ssid, `\:`, ":")
		if ssid = strings.TrimSpace(ssid); ssid != "" {
			found = append(found, ssid)
		}
	}
	return found
}

// parseIPLinkTunnels reads `ip -o link show` and returns point-to-point and
// tunnel interfaces that are not administratively down.
func parseIPLinkTunnels(out string) []string {
	found := []string{}
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := strings.TrimSuffix(fields[1], ":")
		if at := strings.IndexByte(name, '@'); at >= 0 {
			name = name[:at]
		}
		if !hasTunnelPrefix(name) || !hasLinkFlag(fields[2], "UP") {
			continue
		}
		found = append(found, name)
	}
	return found
}

func hasTunnelPrefix(name string) bool {
	for _, prefix := range tunnelPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// hasLinkFlag reports whether a "<A,B,C>" flag list contains flag.
func hasLinkFlag(flags, flag string) bool {
	flags = strings.Trim(flags, "<>")
	for _, f := range strings.Split(flags, ",") {
		if f == flag {
			return true
		}
	}
	return false
}

// parseAirportNetwork reads `networksetup -getairportnetwork en0`.
func parseAirportNetwork(out string) []string {
	return matchLines(out, airportNetworkRe)
}

// parseScutilConnected reads `scutil --nc list` and returns the quoted names
// of connected services.
func parseScutilConnected(out string) []string {
	return matchLines(out, scutilConnRe)
}
