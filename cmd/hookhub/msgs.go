package hookhub

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Plugin lifecycle coordination for event-driven hosts"
	MsgSimulateShort   = "Run a simulated plugin session"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "hookhub version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration"
	MsgErrLoadSettings = "failed to load plugin settings"
	MsgErrNoCommand    = "no command specified"
	MsgErrBuildSession = "failed to build dispatcher"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/hookhub/hookhub.toml)"
	MsgFlagOnce     = "Register trace callbacks in Once mode"
	MsgFlagFormat   = "Output format (auto, term, text, json)"
	MsgFlagCfgFmt   = "Config format (toml, yaml)"
	MsgFlagDefaults = "Print the commented defaults file instead"
)

// Long messages
const (
	MsgRootLong = `hookhub collects plugin callbacks during a bootstrap phase, installs one
aggregated subscription per phase and mode on the host, and lets plugins
publish capabilities for each other during a second phase.

The simulate command drives an in-memory host through that lifecycle.`

	MsgSimulateLong = `Build an in-memory host and dispatcher, attach the trace plugin for every
phase given, fire the bootstrap and capability phases, then fire each phase
in order and print what the plugin recorded.`

	MsgSimulateExample = `  hookhub simulate ready ready updateActor
  hookhub simulate --once ready ready
  hookhub simulate --format json ready`
)
