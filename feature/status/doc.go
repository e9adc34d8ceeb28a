// Package status exposes the sync engine's progress over the HTTP API.
//
// The Service consumes the engine's progress callback and keeps a bounded
// ring of recent state transitions plus aggregate counters. The Handler
// serves that view and offers a manual trigger endpoint.
//
// # Endpoints
//
//   - GET  /sync/status: aggregate summary (phase, counters, last completion)
//   - GET  /sync/events: recent state transitions
//   - POST /sync/run:    trigger a pass in the background
package status
