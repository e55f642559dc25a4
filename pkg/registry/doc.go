// Package registry provides a generic, thread-safe store of named items.
// The capability exchange keeps one per owner and plugin loading uses one
// to reject duplicate plugin names.
package registry
