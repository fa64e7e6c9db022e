// Package particles implements the constellation backdrop: a fixed set of
// drifting points that bounce off the surface edges and are joined by faint
// lines when they come close.
//
// The field owns its frame loop and its resize subscription. [Field.Start]
// registers both, [Field.Stop] removes both and may be called any number of
// times.
//
// # Cost
//
// Connections are found by checking every unordered pair, n(n-1)/2 distance
// tests per frame: 3160 at the default 80 particles. Per-frame cost grows
// quadratically with Config.Count.
package particles
