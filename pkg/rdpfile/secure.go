package rdpfile

import "strings"

// SecureSetting is a setting covered by a file signature. Canonical is the
// spelling used in the signscope list.
type SecureSetting struct {
	Name      string
	Canonical string
}

// SecureSettings lists the signable settings in the order they are signed.
var SecureSettings = []SecureSetting{
	{"full address", "Full Address"},
	{"alternate full address", "Alternate Full Address"},
	{"pcb", "PCB"},
	{"use redirection server name", "Use Redirection Server Name"},
	{"server port", "Server Port"},
	{"negotiate security layer", "Negotiate Security Layer"},
	{"enablecredsspsupport", "EnableCredSspSupport"},
	{"disableconnectionsharing", "DisableConnectionSharing"},
	{"autoreconnection enabled", "AutoReconnection Enabled"},
	{"gatewayhostname", "GatewayHostname"},
	{"gatewayusagemethod", "GatewayUsageMethod"},
	{"gatewayprofileusagemethod", "GatewayProfileUsageMethod"},
	{"gatewaycredentialssource", "GatewayCredentialsSource"},
	{"support url", "Support URL"},
	{"promptcredentialonce", "PromptCredentialOnce"},
	{"require pre-authentication", "Require pre-authentication"},
	{"pre-authentication server address", "Pre-authentication server address"},
	{"alternate shell", "Alternate Shell"},
	{"shell working directory", "Shell Working Directory"},
	{"remoteapplicationprogram", "RemoteApplicationProgram"},
	{"remoteapplicationexpandworkingdir", "RemoteApplicationExpandWorkingdir"},
	{"remoteapplicationmode", "RemoteApplicationMode"},
	{"remoteapplicationguid", "RemoteApplicationGuid"},
	{"remoteapplicationname", "RemoteApplicationName"},
	{"remoteapplicationicon", "RemoteApplicationIcon"},
	{"remoteapplicationfile", "RemoteApplicationFile"},
	{"remoteapplicationfileextensions", "RemoteApplicationFileExtensions"},
	{"remoteapplicationcmdline", "RemoteApplicationCmdLine"},
	{"remoteapplicationexpandcmdline", "RemoteApplicationExpandCmdLine"},
	{"prompt for credentials", "Prompt For Credentials"},
	{"authentication level", "Authentication Level"},
	{"audiomode", "AudioMode"},
	{"redirectdrives", "RedirectDrives"},
	{"redirectprinters", "RedirectPrinters"},
	{"redirectcomports", "RedirectCOMPorts"},
	{"redirectsmartcards", "RedirectSmartCards"},
	{"redirectposdevices", "RedirectPOSDevices"},
	{"redirectclipboard", "RedirectClipboard"},
	{"devicestoredirect", "DevicesToRedirect"},
	{"drivestoredirect", "DrivesToRedirect"},
	{"loadbalanceinfo", "LoadBalanceInfo"},
	{"redirectdirectx", "RedirectDirectX"},
	{"rdgiskdcproxy", "RDGIsKDCProxy"},
	{"kdcproxyname", "KDCProxyName"},
	{"eventloguploadaddress", "EventLogUploadAddress"},
}

var secureIndex = func() map[string]bool {
	m := make(map[string]bool, len(SecureSettings))
	for _, s := range SecureSettings {
		m[s.Name] = true
	}
	return m
}()

// IsSecure reports whether name is covered by signatures.
func IsSecure(name string) bool {
	return secureIndex[strings.ToLower(name)]
}
