// Package watcher turns OS filesystem notifications into change events.
//
// A Registry owns at most one recursive fsnotify subscription. Start on a
// new root builds the new subscription first, then swaps it in and tears
// the old one down; there is no moment where nothing is watched, and no
// event from the old root is delivered after Start returns.
//
// Each fsnotify event becomes exactly one ChangeEvent carrying the touched
// path. Nothing is debounced, batched or deduplicated. Events go to a Sink
// that must not block; a Sink that is full drops the event and the watcher
// moves on.
//
// fsnotify does not watch recursively, so the subscription adds every
// directory under the root when it starts and adds each directory created
// later as soon as its create event has been delivered.
//
//	reg := watcher.NewRegistry(hub.Sink(events.ChangeEventName))
//	if err := reg.Start("/photos"); err != nil {
//	    // errors.CodeOf(err) is NOT_FOUND, INVALID_ARGUMENT or WATCH_ERROR
//	}
//	defer reg.Close()
package watcher
