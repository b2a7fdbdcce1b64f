// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - TickEvent: per-tick fleet and scoring snapshot
//   - MissionEvent: mission assigned to a drone
//   - CompletionEvent: customer order fully delivered
package events
