// Package plinko simulates a plinko board: balls dropped into the top of a
// triangular peg array fall one row per tick, deflecting left or right at
// random at every peg, and collect in cups at the bottom.
//
// Board holds the geometry, State the ball occupancy, Step the per-tick
// transition and Loop the control loop that merges input events with the
// tick clock. Rendering and input are supplied by the caller through the
// Renderer and EventSource interfaces.
package plinko
