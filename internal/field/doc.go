// Package field binds an edit listener to a text field.
//
// A TextField reports every change through its Watchers. A Binding is the
// Watcher that routes each change to a Listener and writes the listener's
// result back, either with the watcher detached for the duration of the
// write (DetachDuringWriteBack) or relying on the listener's re-entry guard
// alone (GuardOnly). Bindings are explicit handles: the caller keeps the
// handle and detaches it, no global registry is involved.
//
// MemoryField is an in-memory TextField that re-notifies its watchers
// synchronously from SetText, the way UI toolkits do. It drives the REPL, the
// TUI and the tests.
package field
