// Package report renders the fee ledger as a tab-separated console
// report.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/erikaderstedt/tkassa/internal/extract"
)

const unknown = "????"

// Write prints one block per person, ordered by family name: an
// identity line followed by one indented line per billable event in
// race date order. Fees are printed as whole currency units.
func Write(w io.Writer, persons []*extract.Person) error {
	sort.SliceStable(persons, func(i, j int) bool {
		return persons[i].Competitor.Family < persons[j].Competitor.Family
	})

	for _, p := range persons {
		id := unknown
		if p.Competitor.ID != nil {
			id = fmt.Sprintf("%d", *p.Competitor.ID)
		}
		birthYear := unknown
		if p.Competitor.BirthYear != nil {
			birthYear = fmt.Sprintf("%d", *p.Competitor.BirthYear)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			id, p.Competitor.Given, p.Competitor.Family, birthYear); err != nil {
			return err
		}

		sort.SliceStable(p.Billable, func(i, j int) bool {
			return p.Billable[i].RaceDate < p.Billable[j].RaceDate
		})
		for _, b := range p.Billable {
			dns := ""
			if b.DNS {
				dns = "DNS"
			}
			if _, err := fmt.Fprintf(w, "\t%d\t%s\t%d\t%d\t%s\n",
				b.RaceDate, b.EventName, uint64(b.NormalFee), uint64(b.LateFee), dns); err != nil {
				return err
			}
		}
	}
	return nil
}
