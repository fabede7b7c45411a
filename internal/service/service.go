// Package service keeps clubs and their events consistent on top of a store
// that only offers single-item writes.
//
// A club carries a denormalised set of the ids of the events it organises,
// while each event is the source of truth for its own clubId. Every cross-entity
// change is a two-step protocol: write the primary record, then update the
// club's index. The second step is best-effort. When it fails or is skipped the
// gap is logged and counted, never reported to the caller, and nothing is
// rolled back.
//
// Set mutations (event ids on a club, attendee ids on an event) are unguarded
// read-modify-write cycles. Two concurrent writers on the same record can lose
// one update; the last full write wins.
package service

import (
	"github.com/rs/zerolog"

	"clubconnect/internal/repo"
)

// New wires the two managers to each other: club deletion cascades through
// event deletion, and event creation and deletion maintain the club index.
func New(repository repo.Repository, log *zerolog.Logger) (*ClubService, *EventService) {
	clubs := &ClubService{repo: repository, log: log}
	events := &EventService{repo: repository, clubs: clubs, log: log}
	clubs.events = events
	return clubs, events
}
