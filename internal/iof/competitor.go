package iof

import "github.com/beevik/etree"

// Competitor identifies a person as observed in one document. The id
// and birth year are frequently absent: Eventor omits the id for
// unregistered runners and the birth year for some result feeds, so the
// same person can look different across events.
type Competitor struct {
	ID        *uint64
	Given     string
	Family    string
	BirthYear *uint64
}

// DecodeCompetitor reads a Person element: optional PersonId, required
// PersonName/{Given,Family}, optional BirthDate/Date (year only).
func DecodeCompetitor(el *etree.Element) (Competitor, error) {
	var c Competitor
	if id, ok := childUint(el, "PersonId"); ok {
		c.ID = &id
	}

	name := el.SelectElement("PersonName")
	if name == nil {
		return Competitor{}, fieldErr(el, "PersonName")
	}
	var err error
	if c.Family, err = requireText(name, "Family"); err != nil {
		return Competitor{}, err
	}
	if c.Given, err = requireText(name, "Given"); err != nil {
		return Competitor{}, err
	}

	if birth := el.SelectElement("BirthDate"); birth != nil {
		// The date is a full "YYYY-MM-DD"; a bare year is not accepted.
		if s, ok := childText(birth, "Date"); ok && len(s) > 4 {
			if year, ok := YearFromDate(s); ok {
				c.BirthYear = &year
			}
		}
	}

	return c, nil
}

// Equal reports field-wise equality, including the optional id and
// birth year.
func (c Competitor) Equal(other Competitor) bool {
	return eqOpt(c.ID, other.ID) &&
		c.Given == other.Given &&
		c.Family == other.Family &&
		eqOpt(c.BirthYear, other.BirthYear)
}

// ProbablySame reports whether two observations plausibly refer to the
// same person, comparing names only. Used as a second-chance match when
// one observation lacks the id or birth year the other carries.
func (c Competitor) ProbablySame(other Competitor) bool {
	return c.Given == other.Given && c.Family == other.Family
}

func eqOpt(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
