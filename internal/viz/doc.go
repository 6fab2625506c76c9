// Package viz provides terminal rendering for wave simulation output.
//
// Displacement profiles draw onto a Braille [Canvas] for sub-character
// resolution; receiver traces and spectra render as asciigraph line
// charts. [Player] replays the snapshot log of a completed run as a
// Bubble Tea animation.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	←/→   - Scrub one frame
//	R     - Restart from the first snapshot
//	Q     - Quit
package viz
