// Package config loads hookhub's configuration.
//
// Values are layered: the embedded defaults, then an optional hookhub.toml
// (or .yaml) file, then HOOKHUB_ environment variables. HOOKHUB_PHASES_API
// sets phases.api.
package config
