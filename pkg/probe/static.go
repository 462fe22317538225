package probe

import (
	"context"
	"os"
	"strings"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Static answers probe queries from a fixed network context. It backs the
// --context flag and tests.
type Static struct {
	Wifi      []string `yaml:"wifi"`
	VPN       []string `yaml:"vpn"`
	Reachable []string `yaml:"reachable"`
}

// LoadStatic reads a YAML network context such as:
//
//	wifi: [HomeNet]
//	vpn: [Corp VPN]
//	reachable: [intranet.example.com]
func LoadStatic(fs afero.Fs, path string) (*Static, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "network context %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read network context %s", path).
			WithDetail("path", path)
	}
	return ParseStatic(data)
}

// ParseStatic decodes a YAML network context.
func ParseStatic(data []byte) (*Static, error) {
	var s Static
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid network context")
	}
	return &s, nil
}

// WifiSSIDs implements Probe.
func (s *Static) WifiSSIDs(context.Context) []string {
	return clone(s.Wifi)
}

// VPNNames implements Probe.
func (s *Static) VPNNames(context.Context) []string {
	return clone(s.VPN)
}

// CanPing implements Probe. Hosts compare case-insensitively.
func (s *Static) CanPing(_ context.Context, host string) bool {
	for _, h := range s.Reachable {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

func clone(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}

var _ Probe = (*Static)(nil)
