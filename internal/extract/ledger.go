package extract

import "github.com/erikaderstedt/tkassa/internal/iof"

// BillableEvent is one ledger row: what a person owes for one event.
// Rows are immutable once appended.
type BillableEvent struct {
	RaceDate  iof.Date
	EventName string
	NormalFee float64
	LateFee   float64
	DNS       bool
}

// Person is one ledger entry: a competitor identity and the events
// they owe for. The Competitor snapshot is taken from the first
// observation and never re-mutated, even when a later event reports a
// different birth year for the same name.
type Person struct {
	Competitor iof.Competitor
	Billable   []BillableEvent
}

// Ledger collects one Person per distinct competitor identity. Entries
// are created lazily during reconciliation and never removed or merged
// afterwards.
type Ledger struct {
	persons []*Person
}

// Resolve returns the ledger entry for a competitor observation,
// creating one if needed. Matching is two-phase: an exact field-wise
// match first, then a given+family name match that merges observations
// differing only in id or birth year. The relaxed key is not injective,
// so it must never be the primary lookup.
func (l *Ledger) Resolve(candidate iof.Competitor) *Person {
	for _, p := range l.persons {
		if p.Competitor.Equal(candidate) {
			return p
		}
	}
	for _, p := range l.persons {
		if p.Competitor.ProbablySame(candidate) {
			return p
		}
	}
	p := &Person{Competitor: candidate}
	l.persons = append(l.persons, p)
	return p
}

// Persons returns the ledger entries in creation order.
func (l *Ledger) Persons() []*Person {
	return l.persons
}
