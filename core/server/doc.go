// Package server holds the status API server configuration.
//
// The watch command builds the Fiber application itself; this package only
// carries the settings (listen port, optional API key) so they participate in
// the shared configuration loading.
package server
