package iof

import "github.com/beevik/etree"

// EntrantKind is the participation mode of a pre-registration.
type EntrantKind int

const (
	// EntrantUnknown is an individual entry without a person id.
	EntrantUnknown EntrantKind = iota
	// EntrantIndividual is an identified individual entry.
	EntrantIndividual
	// EntrantTeam is a team entry, which carries no individually
	// billable identity.
	EntrantTeam
)

// Entrant is the who of a pre-registration. PersonID is only
// meaningful for EntrantIndividual.
type Entrant struct {
	Kind     EntrantKind
	PersonID uint64
}

// decodeEntrant derives the entrant from the presence or absence of a
// Competitor sub-record. It cannot fail: no Competitor means a team
// entry, a Competitor without a PersonId means an unidentified one.
func decodeEntrant(el *etree.Element) Entrant {
	competitor := el.SelectElement("Competitor")
	if competitor == nil {
		return Entrant{Kind: EntrantTeam}
	}
	if id, ok := childUint(competitor, "PersonId"); ok {
		return Entrant{Kind: EntrantIndividual, PersonID: id}
	}
	return Entrant{Kind: EntrantUnknown}
}

// Entry is a pre-registration: an entrant plus the fee references the
// entrant signed up for, in ascending sequence order.
type Entry struct {
	Entrant Entrant
	FeeIDs  []uint64
}

// DecodeEntry reads an Entry element with its EntryEntryFee children.
func DecodeEntry(el *etree.Element) (Entry, error) {
	feeIDs, err := sortedFeeIDs(el, "EntryEntryFee")
	if err != nil {
		return Entry{}, err
	}
	return Entry{Entrant: decodeEntrant(el), FeeIDs: feeIDs}, nil
}

// IsForPerson reports whether this entry pre-registers the identified
// individual with the given id. A nil id never matches.
func (e Entry) IsForPerson(personID *uint64) bool {
	if personID == nil {
		return false
	}
	return e.Entrant.Kind == EntrantIndividual && e.Entrant.PersonID == *personID
}
