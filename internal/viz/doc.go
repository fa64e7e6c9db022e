// Package viz renders the backdrop and the cube in a terminal.
//
//   - [Canvas]: Braille-based pixel canvas with a colour per cell
//   - [Terminal]: particles.Surface drawing onto a Canvas
//   - [DrawCube]: outlines and labels the visible cube faces
//   - Theme selection with 5 built-in color schemes
//
// Logical units are 8x16 per terminal cell, which makes one braille dot a
// 4x4 square and keeps circles round.
package viz
