// Package host provides device.Environment implementations.
//
// Terminal measures the controlling terminal: a size fed by the UI
// framework, the kernel window size, COLUMNS/LINES and a configured fallback,
// in that order. Cell pixel height (TIOCGWINSZ) stands in for the computed
// font size. Resize events come from SIGWINCH or from Feed.
//
// Static is an in-memory environment for tests and scripted runs.
package host
