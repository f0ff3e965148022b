// Package ui provides the interactive terminal view for devinfo.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program with a single root Model. The model owns one
// device.Observer and plays the role of a mounted component: the observer is
// constructed in New, attached when the first tea.WindowSizeMsg arrives (the
// first committed layout) and detached when Run returns.
//
// # Event Flow
//
//  1. New constructs the observer; a headless terminal delivers one snapshot
//     right away.
//  2. The first WindowSizeMsg attaches the observer; the reporter schedules the
//     initial snapshot.
//  3. Every WindowSizeMsg is fed to the host environment, which triggers the
//     reporter's debounced resize fan-out.
//  4. Snapshots are recorded in state.Store and handed to the program through
//     a one-slot channel where the newest value wins.
//  5. Context cancellation or q/ctrl+c stops the program.
//
// # Key Bindings
//
//   - r: Re-measure and broadcast to all subscribers
//   - c: Copy the current snapshot as JSON to the clipboard
//   - s: Toggle the screen panel
//   - T: Cycle theme
//   - ?/h: Toggle help
//   - q or Ctrl+C: Exit
//
// Theme and screen panel visibility are persisted through the prefs package.
package ui
