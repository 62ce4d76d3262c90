package request

// Remote action names, preserved exactly as the vendor defines them.
const (
	ActionLogin                    = "authSource"
	ActionLogout                   = "logoutVerifiction"
	ActionQueryAccountInfo         = "queryAccountInfo"
	ActionQueryPlantInfo           = "queryPlantInfo"
	ActionQueryDeviceLastData      = "querySPDeviceLastData"
	ActionQueryKeyParameters       = "querySPKeyParameters"
	ActionQueryParameterOneDay     = "querySPDeviceKeyParameterOneDay"
	ActionQueryDeviceChartFields   = "queryDeviceChartsFieldsEs"
	ActionQueryDeviceDataPaging    = "queryDeviceDataOneDayPaging"
	ActionQueryDeviceCtrlValue     = "queryDeviceCtrlValue"
	ActionCtrlDevice               = "ctrlDevice"
	ActionWebQueryDeviceCtrlField  = "webQueryDeviceCtrlField"
	ActionQueryPlantCurrenciesAll  = "queryPlantCurrenciesAll"
	ActionQueryDomainListNotLogin  = "queryDomainListNotLogin"
	ActionQueryCollectorProtocol   = "queryCollectorProtocol"
	ActionEditDeviceInfo           = "editDeviceInfo"
	ActionSendCmdToDevice          = "sendCmdToDevice"
	ActionDelDeviceFromPlant       = "delDeviceFromPlant"
)

// public actions are authenticated by company key rather than by a
// session, so the builder issues them unsigned.
var publicActions = map[string]bool{
	ActionLogin:                   true,
	ActionQueryDomainListNotLogin: true,
	ActionQueryCollectorProtocol:  true,
}

// companyKeyActions carry the fixed company key. The domain list is
// public but takes no company key on the wire.
var companyKeyActions = map[string]bool{
	ActionLogin:                  true,
	ActionQueryCollectorProtocol: true,
}

// mutatingActions change remote state. The transport must never retry
// them automatically; issuing a control command twice is unsafe.
var mutatingActions = map[string]bool{
	ActionLogin:              true,
	ActionLogout:             true,
	ActionCtrlDevice:         true,
	ActionEditDeviceInfo:     true,
	ActionSendCmdToDevice:    true,
	ActionDelDeviceFromPlant: true,
}

// RequiresSession reports whether action needs an authenticated session.
func RequiresSession(action string) bool {
	return !publicActions[action]
}

// Mutating reports whether action changes remote state.
func Mutating(action string) bool {
	return mutatingActions[action]
}

// NeedsCompanyKey reports whether action carries the company key.
func NeedsCompanyKey(action string) bool {
	return companyKeyActions[action]
}
