// Package viz renders recorded runs in the terminal.
//
// [Replay] is a Bubble Tea model that scrubs through a stored trace, plotting
// a window of the selected quantity with asciigraph and listing the values of
// the current sample.
//
// # Key Bindings
//
//	Space      - Play/pause
//	←/→ or h/l - Step backward/forward
//	g/G        - Jump to start/end
//	Tab        - Next quantity (Shift+Tab for previous)
//	+/-        - Faster/slower playback
//	↑/↓        - Narrow/widen the plotted window
//	q          - Quit
package viz
