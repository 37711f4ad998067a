package iof

import (
	"fmt"

	"github.com/beevik/etree"
)

// Race is one race of an event. Single-day events have exactly one.
type Race struct {
	ID   uint64
	Date Date
}

// DecodeRace reads an EventRace element: required EventRaceId and
// RaceDate.
func DecodeRace(el *etree.Element) (Race, error) {
	var r Race
	var err error
	if r.ID, err = requireUint(el, "EventRaceId"); err != nil {
		return Race{}, err
	}
	raceDate := el.SelectElement("RaceDate")
	if raceDate == nil {
		return Race{}, fieldErr(el, "RaceDate")
	}
	if r.Date, err = DecodeDate(raceDate); err != nil {
		return Race{}, err
	}
	return r, nil
}

// Event is one event with its races. Race dates drive both the event
// processing order and the ledger's per-event sorting.
type Event struct {
	ID    uint64
	Name  string
	Races []Race
}

// DecodeEvent reads an Event element: required EventId and Name, plus
// any EventRace children.
func DecodeEvent(el *etree.Element) (Event, error) {
	var e Event
	var err error
	if e.ID, err = requireUint(el, "EventId"); err != nil {
		return Event{}, err
	}
	if e.Name, err = requireText(el, "Name"); err != nil {
		return Event{}, err
	}
	if e.Races, err = Children(el, "EventRace", DecodeRace); err != nil {
		return Event{}, err
	}
	return e, nil
}

// FirstRaceDate returns the date of the event's first race, or zero
// when the event has none.
func (e Event) FirstRaceDate() Date {
	if len(e.Races) == 0 {
		return 0
	}
	return e.Races[0].Date
}

// DateForRace resolves a race id against the event's race list. A race
// id from a result document that the event does not know indicates
// inconsistent source documents.
func (e Event) DateForRace(raceID uint64) (Date, error) {
	for _, race := range e.Races {
		if race.ID == raceID {
			return race.Date, nil
		}
	}
	return 0, fmt.Errorf("race %d in event %q: %w", raceID, e.Name, ErrUnknownRace)
}
