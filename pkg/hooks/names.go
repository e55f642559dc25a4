package hooks

// Stable names of the bootstrap protocol
const (
	// CoreID is the owner under which the core publishes its capabilities
	CoreID = "hookhub"

	// EventRegister is broadcast while registrations are collected
	EventRegister = "hookhub.register"
	// EventAddAPI is broadcast while capabilities are collected
	EventAddAPI = "hookhub.addApi"

	// DefaultBootstrapPhase is reserved and cannot be registered against
	DefaultBootstrapPhase = "init"
	// DefaultAPIPhase fires after the bootstrap phase
	DefaultAPIPhase = "setup"
)
