// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Window frontend (ebiten), PNG snapshots, YAML config
// 0.2.0 - tcell frontend, half-block cell sampling
// 0.1.0 - Initial release: parallax starfield engine, bubbletea frontend
