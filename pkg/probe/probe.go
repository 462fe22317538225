// Package probe answers questions about the host's current network context:
// associated Wi-Fi networks, active VPN links and host reachability.
//
// Probes never fail. Anything that goes wrong while querying the system is
// logged and reported as an empty list or false, so a disconnected machine
// renders the same way as one on an unknown network.
package probe

import (
	"context"
)

// Probe is a read-only view of the network context. Results are not cached;
// two calls may observe different answers if the environment changed.
type Probe interface {
	// WifiSSIDs returns the SSIDs of all associated wireless networks.
	WifiSSIDs(ctx context.Context) []string
	// VPNNames returns the names of all active point-to-point/VPN links.
	VPNNames(ctx context.Context) []string
	// CanPing reports whether host answered a single ping.
	CanPing(ctx context.Context, host string) bool
}

// Offline is a Probe with no network at all.
type Offline struct{}

func (Offline) WifiSSIDs(context.Context) []string   { return []string{} }
func (Offline) VPNNames(context.Context) []string    { return []string{} }
func (Offline) CanPing(context.Context, string) bool { return false }

var _ Probe = Offline{}
