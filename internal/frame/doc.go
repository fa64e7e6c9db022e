// Package frame provides the per-frame scheduling primitive that animated
// components register with.
//
//   - [Scheduler]: request/cancel a callback for the next frame
//   - [Queue]: single-threaded Scheduler pumped by the host once per repaint
//   - [Loop]: task that re-registers itself every frame until stopped
//
// # Thread Safety
//
// Queue is NOT thread-safe. The host must call Flush, Request and Cancel
// from the same goroutine (the Bubble Tea update loop in practice).
package frame
