// Package engine evaluates parsed templates into connection profile documents.
//
// A render threads one RenderContext through the template: the argument
// vector, the append-only SettingsStore fed by every completed output line,
// the SignRegister written by sign() directives and the network Probe the
// query functions consult. Probe failures degrade to false or empty lists;
// evaluation errors abort the render.
//
// Directive functions:
//
//	contains(collection, needle, ...)  any needle is an element of collection
//	can_ping(host)                     host answered a ping
//	get_connected_wifi()               associated Wi-Fi SSIDs
//	wifi_is(name, ...)                 any name is a connected SSID
//	get_connected_vpn()                active VPN links
//	vpn_is(name, ...)                  any name is an active VPN link
//	get_setting(key)                   value of the latest emitted setting
//	sign(cert, key)                    sign the finished document
//
// Signing is deferred: the last sign() evaluated, or the caller's override,
// is applied once by the Assembler after the whole template has rendered.
package engine
