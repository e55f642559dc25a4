// Package bus is an in-memory host: it delivers phases to once and
// recurring subscriptions and broadcasts named events to listeners. It is
// the host used by the CLI and by tests; an embedding application may
// provide its own implementation of dispatcher.Host instead.
package bus
