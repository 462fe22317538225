package rdpgen

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render Remote Desktop connection profiles from templates"
	MsgRenderShort     = "Render a template and launch or write the profile"
	MsgCheckShort      = "Check templates for syntax errors"
	MsgProbeShort      = "Show the network context templates see"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgCheckOK       = "%s: ok"
	MsgWrote         = "Wrote %s"
	MsgWroteSigned   = "Wrote %s (signed)"
	MsgLaunched      = "Launched %s"
	MsgNone          = "(none)"
	MsgReachable     = "reachable"
	MsgUnreachable   = "unreachable"
	MsgProbeKind     = "Kind"
	MsgProbeValue    = "Value"
	MsgProbeWifi     = "wifi"
	MsgProbeVPN      = "vpn"
	MsgProbePing     = "ping %s"
	MsgProbeTitle    = "Network context"
	MsgVersionFormat = "rdpgen version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrTopics    = "help command not found"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/rdpgen/config.toml)"
	MsgFlagFormat   = "Output format for reports: auto, term, text or json"
	MsgFlagOutput   = "Write the profile to this path instead of launching it ('-' for stdout)"
	MsgFlagCert     = "Certificate to sign the profile with (PEM)"
	MsgFlagKey      = "Private key matching --cert (PEM)"
	MsgFlagContext  = "Answer network queries from this YAML file"
	MsgFlagLaunch   = "Launch the profile even when writing it with -o"
	MsgFlagWait     = "Wait for the Remote Desktop client to exit"
	MsgFlagPing     = "Host to ping (repeatable)"
	MsgFlagDefaults = "Print the commented built-in defaults instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/probe-long.txt
	msgProbeLongRaw string
	MsgProbeLong    = strings.TrimSpace(msgProbeLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
