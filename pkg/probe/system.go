package probe

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/arthur-debert/rdpgen/pkg/logging"
)

// command is a program invocation.
type command struct {
	name string
	args []string
}

// platform holds the commands and output parsers for one operating system.
type platform struct {
	wifi      *command
	parseWifi func(string) []string
	vpn       *command
	parseVPN  func(string) []string
	ping      func(host string, timeout time.Duration) command
}

var platforms = map[string]platform{
	"windows": {
		wifi:      &command{"netsh", []string{"wlan", "show", "interfaces"}},
		parseWifi: parseNetshSSIDs,
		vpn:       &command{"ipconfig", nil},
		parseVPN:  parseIpconfigPPP,
		ping: func(host string, timeout time.Duration) command {
			ms := strconv.FormatInt(timeout.Milliseconds(), 10)
			return command{"ping", []string{"-n", "1", "-w", ms, host}}
		},
	},
	"linux": {
		wifi:      &command{"nmcli", []string{"-t", "-f", "active,ssid", "dev", "wifi"}},
		parseWifi: parseNmcliSSIDs,
		vpn:       &command{"ip", []string{"-o", "link", "show"}},
		parseVPN:  parseIPLinkTunnels,
		ping: func(host string, timeout time.Duration) command {
			return command{"ping", []string{"-c", "1", "-W", seconds(timeout), host}}
		},
	},
	"darwin": {
		wifi:      &command{"networksetup", []string{"-getairportnetwork", "en0"}},
		parseWifi: parseAirportNetwork,
		vpn:       &command{"scutil", []string{"--nc", "list"}},
		parseVPN:  parseScutilConnected,
		ping: func(host string, timeout time.Duration) command {
			return command{"ping", []string{"-c", "1", "-t", seconds(timeout), host}}
		},
	},
}

// seconds rounds a timeout up to whole seconds, at least one.
func seconds(d time.Duration) string {
	s := int64((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return strconv.FormatInt(s, 10)
}

// System probes the live machine by running OS commands.
type System struct {
	runner      Runner
	goos        string
	pingTimeout time.Duration
}

// NewSystem creates a probe for the running operating system.
func NewSystem(runner Runner, pingTimeout time.Duration) *System {
	return NewSystemFor(runtime.GOOS, runner, pingTimeout)
}

// NewSystemFor creates a probe using the commands of goos.
func NewSystemFor(goos string, runner Runner, pingTimeout time.Duration) *System {
	return &System{runner: runner, goos: goos, pingTimeout: pingTimeout}
}

// WifiSSIDs implements Probe.
func (s *System) WifiSSIDs(ctx context.Context) []string {
	p, ok := platforms[s.goos]
	if !ok || p.wifi == nil {
		return []string{}
	}
	ssids := s.list(ctx, *p.wifi, p.parseWifi)
	logger := logging.GetLogger("probe.system")
	logger.Info().Strs("ssids", ssids).Msg("connected Wi-Fi")
	return ssids
}

// VPNNames implements Probe.
func (s *System) VPNNames(ctx context.Context) []string {
	p, ok := platforms[s.goos]
	if !ok || p.vpn == nil {
		return []string{}
	}
	names := s.list(ctx, *p.vpn, p.parseVPN)
	logger := logging.GetLogger("probe.system")
	logger.Info().Strs("vpns", names).Msg("connected VPN")
	return names
}

// CanPing implements Probe. Only a zero exit status counts as reachable.
func (s *System) CanPing(ctx context.Context, host string) bool {
	logger := logging.GetLogger("probe.system")

	p, ok := platforms[s.goos]
	if !ok || p.ping == nil || host == "" {
		return false
	}
	cmd := p.ping(host, s.pingTimeout)
	res, err := s.runner.Run(ctx, cmd.name, cmd.args...)
	if err != nil {
		logger.Warn().Err(err).Str("host", host).Msg("ping could not run")
		return false
	}
	reachable := res.ExitCode == 0
	logger.Info().
		Str("host", host).
		Bool("reachable", reachable).
		Dur("took", res.Duration).
		Msg("checked ping")
	return reachable
}

func (s *System) list(ctx context.Context, cmd command, parse func(string) []string) []string {
	logger := logging.GetLogger("probe.system")
	res, err := s.runner.Run(ctx, cmd.name, cmd.args...)
	if err != nil {
		logger.Warn().Err(err).Str("command", cmd.name).Msg("probe command could not run")
		return []string{}
	}
	if res.ExitCode != 0 {
		logger.Debug().
			Str("command", cmd.name).
			Int("exit_code", res.ExitCode).
			Msg("probe command failed")
		return []string{}
	}
	return parse(res.Stdout)
}

var _ Probe = (*System)(nil)
