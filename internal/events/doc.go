// Package events is the in-process event bus that carries watcher
// notifications to the UI.
//
// Consumers subscribe to a topic by name and receive events on a buffered
// channel. Emit never blocks: a subscriber whose buffer is full simply
// misses that event. The only topic published today is ChangeEventName,
// whose payload is a watcher.ChangeEvent:
//
//	event: fs://changed
//	data: {"paths":["/photos/new.png"],"kind":"create"}
//
// Handler exposes a topic over HTTP as Server-Sent Events at
// GET /api/events?name=fs://changed.
package events
