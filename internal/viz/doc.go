// Package viz is the terminal front end of a simulation.
//
// It renders a window of geohash cells around a centre cell using the
// Bubble Tea framework and forwards edits to a [sim.Controller]:
//
//   - [Model]: viewport, cursor and tick scheduling
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Arrows/hjkl - Move cursor
//	HJKL        - Pan viewport
//	Space/X     - Toggle cell under cursor (while editing)
//	Enter/S     - Start or stop
//	R           - Reset
//	C           - Centre on cursor
//	T           - Cycle color themes
//	?           - Show help overlay
package viz
