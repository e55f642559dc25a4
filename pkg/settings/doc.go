// Package settings is the settings-storage collaborator plugins use to
// declare and read their options. Plugins register a Descriptor per key;
// values come from a TOML or YAML file, HOOKHUB_SETTINGS_ environment
// variables or Set, and fall back to the descriptor default.
package settings
