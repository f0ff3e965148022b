// Package device reports viewport and device characteristics to observers.
//
// # Overview
//
// A Reporter measures an Environment (the terminal, or a static fixture in
// tests) and produces Info snapshots: viewport width and height, orientation,
// default font size, width in font units, a duplicated "screen" section and
// the parsed user agent. Observers register a Listener and receive a fresh
// snapshot whenever the viewport changes.
//
// # Notification Channels
//
//	Broadcast channel (shared, rate limited):
//	  resize event ─> Changed() ─> debounce (250ms) ─> Broadcast() ─> every listener
//
//	Direct channel (one listener, bypasses the list):
//	  Deliver(fn)            synchronous
//	  DeliverAfter(fn, d)    delayed, cancellable
//
// Every listener in one round receives the same Info value. Rounds never
// interleave.
//
// # Observer Lifecycle
//
//	NewObserver ──> Constructed ──Attach()──> Attached ──Detach()──> Detached
//	      │
//	      └─ no display: one synchronous Deliver, observer stays headless
//
// Attach registers the listener and schedules an initial snapshot after a
// short delay so layout can settle. Detach unregisters and cancels that
// initial snapshot if it is still pending. SetListener swaps the callback in
// place without re-registering.
//
// Subscribe and Watch wrap the lifecycle for callers that just want a scoped
// subscription:
//
//	sub := reporter.Subscribe(func(info device.Info) {
//		fmt.Println(info.WindowDetails)
//	}, device.ObserverOptions{})
//	defer sub.Close()
//
// # Resize Listening
//
// The reporter attaches exactly one resize listener to its Environment, when
// the first listener registers, and removes it when the last one leaves.
//
// # Unknown and Malformed Values
//
// Without a display, Width and Height are SizeUnknown and Orientation is
// Landscape. A font size the host cannot express as a number parses to NaN
// and flows through to WidthEm; listeners must tolerate it. JSON and YAML
// encodings write unknown sizes as null and omit non-finite numbers.
package device
