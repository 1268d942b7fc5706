// Package ui renders the viewer in the terminal and translates keystrokes
// into view, search, and zoom commands.
//
// The package is a thin collaborator around [app.App]: a Bubble Tea model
// drives one [app.App.Tick] per frame message, hands navigation commands to
// the view, and draws the flame graph, the aggregated table, the status
// line, and the optional log panel with lipgloss styles. All session logic
// lives behind the app and view packages; this package only maps keys and
// paints cells.
package ui
