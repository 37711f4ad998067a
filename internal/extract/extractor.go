// Package extract reconciles Eventor result, fee, class and entry
// documents into a per-person ledger of owed entry fees.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/beevik/etree"

	"github.com/erikaderstedt/tkassa/internal/billing"
	"github.com/erikaderstedt/tkassa/internal/eventor"
	"github.com/erikaderstedt/tkassa/internal/iof"
)

// ErrUnresolvableFee marks a person result that neither a
// pre-registration nor an event class can price. The data model has no
// way to bill such a person, so the run stops rather than produce a
// silently wrong ledger.
var ErrUnresolvableFee = errors.New("no fee path resolves for person")

// Fetcher is the transport collaborator. Implementations may cache
// responses; the extractor works the same either way. Any transport or
// parse failure is fatal to the run.
type Fetcher interface {
	Fetch(ctx context.Context, q eventor.Query) (*etree.Element, error)
}

// Extractor walks all events of a date range and builds the club's fee
// ledger. Events are processed strictly sequentially in ascending
// first-race-date order.
type Extractor struct {
	fetcher       Fetcher
	orgID         uint64
	ignoreEvents  []uint64
	referenceYear uint64
}

// New returns an Extractor for one club. ignoreEvents lists event ids
// to skip entirely; referenceYear substitutes for unknown birth years
// when filtering direct-entry fees.
func New(fetcher Fetcher, orgID uint64, ignoreEvents []uint64, referenceYear uint64) *Extractor {
	return &Extractor{
		fetcher:       fetcher,
		orgID:         orgID,
		ignoreEvents:  ignoreEvents,
		referenceYear: referenceYear,
	}
}

// Run fetches the event list for the date range and reconciles every
// event the club participated in. It returns the complete ledger or
// the first fatal error; there is no partial result.
func (x *Extractor) Run(ctx context.Context, fromDate, toDate string) (*Ledger, error) {
	eventList, err := x.fetcher.Fetch(ctx, eventor.EventsQuery(fromDate, toDate))
	if err != nil {
		return nil, err
	}
	events, err := iof.Children(eventList, "Event", iof.DecodeEvent)
	if err != nil {
		return nil, fmt.Errorf("reading event list: %w", err)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].FirstRaceDate() < events[j].FirstRaceDate()
	})

	ledger := &Ledger{}
	for _, event := range events {
		if slices.Contains(x.ignoreEvents, event.ID) {
			slog.Debug("ignoring event", "id", event.ID, "name", event.Name)
			continue
		}
		if err := x.reconcileEvent(ctx, event, ledger); err != nil {
			return nil, err
		}
	}
	return ledger, nil
}

func (x *Extractor) reconcileEvent(ctx context.Context, event iof.Event, ledger *Ledger) error {
	resultList, err := x.fetcher.Fetch(ctx, eventor.OrganisationResultsQuery(x.orgID, event.ID))
	if err != nil {
		return err
	}
	// No ClassResult means nobody from the club was at the event; the
	// fee and entry documents are not fetched at all then.
	if resultList.SelectElement("ClassResult") == nil {
		return nil
	}

	slog.Info("event", "name", event.Name)

	feeList, err := x.fetcher.Fetch(ctx, eventor.EntryFeesQuery(event.ID))
	if err != nil {
		return err
	}
	fees, err := iof.Children(feeList, "EntryFee", iof.DecodeEntryFee)
	if err != nil {
		return fmt.Errorf("reading entry fee list: %w", err)
	}

	classList, err := x.fetcher.Fetch(ctx, eventor.EventClassesQuery(event.ID))
	if err != nil {
		return err
	}
	eventClasses, err := iof.Children(classList, "EventClass", iof.DecodeEventClass)
	if err != nil {
		return fmt.Errorf("reading event classes: %w", err)
	}

	entryList, err := x.fetcher.Fetch(ctx, eventor.EntriesQuery(x.orgID, event.ID))
	if err != nil {
		return err
	}
	entries, err := iof.Children(entryList, "Entry", iof.DecodeEntry)
	if err != nil {
		return fmt.Errorf("reading entry list: %w", err)
	}

	classResults, err := iof.Children(resultList, "ClassResult", iof.DecodeClassResult)
	if err != nil {
		return fmt.Errorf("reading result list: %w", err)
	}

	for _, class := range classResults {
		raceDate, err := event.DateForRace(class.EventRaceID)
		if err != nil {
			return err
		}
		// The event class can legitimately be absent when entry classes
		// differ from race classes, such as elite events with
		// qualification races.
		eventClass := findEventClass(eventClasses, class.EventClassID)

		for _, personResult := range class.PersonResults {
			person := ledger.Resolve(personResult.Competitor)

			normal, late, err := x.resolveFee(person, personResult, eventClass, entries, fees, event)
			if err != nil {
				return err
			}

			person.Billable = append(person.Billable, BillableEvent{
				RaceDate:  raceDate,
				EventName: event.Name,
				NormalFee: normal,
				LateFee:   late,
				DNS:       personResult.DNS,
			})
		}
	}
	return nil
}

// resolveFee prices one person result. The pre-registration path takes
// precedence; the direct-entry path via the event class is the
// fallback. Neither resolving is fatal.
func (x *Extractor) resolveFee(
	person *Person,
	personResult iof.PersonResult,
	eventClass *iof.EventClass,
	entries []iof.Entry,
	fees []iof.EntryFee,
	event iof.Event,
) (normal, late float64, err error) {
	for _, entry := range entries {
		if entry.IsForPerson(person.Competitor.ID) {
			return billing.PaidFees(entry.FeeIDs, fees)
		}
	}

	if eventClass != nil {
		birthYear := x.referenceYear
		if personResult.Competitor.BirthYear != nil {
			birthYear = *personResult.Competitor.BirthYear
		}
		eligible, err := billing.EligibleFeeIDs(eventClass.FeeIDs, birthYear, fees)
		if err != nil {
			return 0, 0, err
		}
		return billing.PaidFees(eligible, fees)
	}

	return 0, 0, fmt.Errorf("%s %s in event %q: %w",
		person.Competitor.Given, person.Competitor.Family, event.Name, ErrUnresolvableFee)
}

func findEventClass(classes []iof.EventClass, id uint64) *iof.EventClass {
	for i := range classes {
		if classes[i].ID == id {
			return &classes[i]
		}
	}
	return nil
}
