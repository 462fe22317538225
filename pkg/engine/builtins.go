package engine

import (
	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
)

const variadic = -1

// builtin is a directive function callable from templates.
type builtin struct {
	minArgs int
	maxArgs int
	call    func(rc *RenderContext, args []Value) (Value, error)
}

var builtins = map[string]builtin{
	"contains":           {minArgs: 1, maxArgs: variadic, call: builtinContains},
	"can_ping":           {minArgs: 1, maxArgs: 1, call: builtinCanPing},
	"get_connected_wifi": {minArgs: 0, maxArgs: 0, call: builtinConnectedWifi},
	"wifi_is":            {minArgs: 0, maxArgs: variadic, call: builtinWifiIs},
	"get_connected_vpn":  {minArgs: 0, maxArgs: 0, call: builtinConnectedVPN},
	"vpn_is":             {minArgs: 0, maxArgs: variadic, call: builtinVPNIs},
	"get_setting":        {minArgs: 1, maxArgs: 1, call: builtinGetSetting},
	"sign":               {minArgs: 2, maxArgs: 2, call: builtinSign},
}

// Builtins returns the names of all directive functions.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

func stringArg(fn string, args []Value, i int) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", errors.Newf(errors.ErrEvaluation, "%s() argument %d must be a string, got %s", fn, i+1, typeName(args[i]))
	}
	return s, nil
}

// containsAny reports whether any needle equals an item of collection.
// Items compare as equal does, so a non-string needle never matches a
// string item.
func containsAny(collection []Value, needles []Value) bool {
	for _, item := range collection {
		for _, needle := range needles {
			if equal(needle, item) {
				return true
			}
		}
	}
	return false
}

func builtinContains(_ *RenderContext, args []Value) (Value, error) {
	return containsAny(asList(args[0]), args[1:]), nil
}

func builtinCanPing(rc *RenderContext, args []Value) (Value, error) {
	host, err := stringArg("can_ping", args, 0)
	if err != nil {
		return nil, err
	}
	return rc.Probe.CanPing(rc.ctx, host), nil
}

func builtinConnectedWifi(rc *RenderContext, _ []Value) (Value, error) {
	return nonNil(rc.Probe.WifiSSIDs(rc.ctx)), nil
}

func builtinWifiIs(rc *RenderContext, args []Value) (Value, error) {
	ssids := rc.Probe.WifiSSIDs(rc.ctx)
	logger := logging.GetLogger("engine.eval")
	logger.Info().
		Strs("want", stringsOf(args)).
		Strs("connected", ssids).
		Msg("checking Wi-Fi connection")
	return containsAny(asList(ssids), args), nil
}

func builtinConnectedVPN(rc *RenderContext, _ []Value) (Value, error) {
	return nonNil(rc.Probe.VPNNames(rc.ctx)), nil
}

func builtinVPNIs(rc *RenderContext, args []Value) (Value, error) {
	vpns := rc.Probe.VPNNames(rc.ctx)
	logger := logging.GetLogger("engine.eval")
	logger.Info().
		Strs("want", stringsOf(args)).
		Strs("connected", vpns).
		Msg("checking VPN connection")
	return containsAny(asList(vpns), args), nil
}

func builtinGetSetting(rc *RenderContext, args []Value) (Value, error) {
	key, err := stringArg("get_setting", args, 0)
	if err != nil {
		return nil, err
	}
	setting, ok := rc.Settings.LookupLatest(key)
	if !ok {
		return nil, errors.Newf(errors.ErrUndefinedSetting, "setting %q not yet defined", key).
			WithDetail("setting", key)
	}
	return setting.Value, nil
}

func builtinSign(rc *RenderContext, args []Value) (Value, error) {
	cert, err := stringArg("sign", args, 0)
	if err != nil {
		return nil, err
	}
	key, err := stringArg("sign", args, 1)
	if err != nil {
		return nil, err
	}
	rc.Sign.Record(cert, key)
	logger := logging.GetLogger("engine.eval")
	logger.Info().
		Str("cert", cert).
		Str("key", key).
		Msg("recorded deferred signing request")
	return nil, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func stringsOf(values []Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Stringify(v)
	}
	return out
}
