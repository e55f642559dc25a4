// Package hooks defines the vocabulary shared by the dispatcher, the host
// bus and plugins: phases and modes, callbacks, the registration registry
// and the typed handshake adapters plugins use to join the bootstrap
// protocol.
package hooks
