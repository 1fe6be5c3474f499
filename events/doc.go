// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events provides the in-process change feed behind GET /events.

# Hub

Handlers publish change notifications to a shared hub:

	hub := events.NewHub()
	hub.Publish(events.Event{Table: "upload", Action: events.ActionInsert, ID: id})

# Subscriptions

Subscribers receive events for the tables they name, or everything when
no tables are given:

	sub := hub.Subscribe([]string{"upload", "result"})
	defer hub.Unsubscribe(sub)
	for e := range sub.Events() {
		// ...
	}

Publishing never blocks: a subscriber whose buffer is full misses the
event rather than stalling the publisher. Unsubscribe closes the
subscriber's channel and is safe to call more than once.
*/
package events
