package iof

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"
)

// FeeOperator distinguishes how an entry fee's amount is applied.
type FeeOperator int

const (
	// Fixed fees carry a currency amount.
	Fixed FeeOperator = iota
	// Percent fees carry a percentage applied to previously accumulated
	// fixed fees.
	Percent
)

// EntryFee is one fee from an event's fee catalog. The optional birth
// year bounds restrict which competitors the fee applies to; both
// bounds are inclusive and a missing bound is unbounded on that side.
type EntryFee struct {
	ID            uint64
	Name          string
	Amount        float64
	Operator      FeeOperator
	FromBirthYear *uint64
	ToBirthYear   *uint64
}

// DecodeEntryFee reads an EntryFee element: required EntryFeeId, Name,
// Amount and valueOperator attribute, optional FromDateOfBirth and
// ToDateOfBirth ranges (year part only).
func DecodeEntryFee(el *etree.Element) (EntryFee, error) {
	var fee EntryFee
	var err error
	if fee.ID, err = requireUint(el, "EntryFeeId"); err != nil {
		return EntryFee{}, err
	}
	if fee.Name, err = requireText(el, "Name"); err != nil {
		return EntryFee{}, err
	}
	amount, ok := childFloat(el, "Amount")
	if !ok {
		return EntryFee{}, fieldErr(el, "Amount")
	}
	fee.Amount = amount

	switch op := el.SelectAttrValue("valueOperator", ""); op {
	case "fixed":
		fee.Operator = Fixed
	case "percent":
		fee.Operator = Percent
	case "":
		return EntryFee{}, fmt.Errorf("%s: no valueOperator attribute: %w", el.GetPath(), ErrMissingField)
	default:
		return EntryFee{}, fmt.Errorf("%s: unrecognized valueOperator %q: %w", el.GetPath(), op, ErrMissingField)
	}

	fee.FromBirthYear = birthYearBound(el, "FromDateOfBirth")
	fee.ToBirthYear = birthYearBound(el, "ToDateOfBirth")
	return fee, nil
}

func birthYearBound(el *etree.Element, name string) *uint64 {
	bound := el.SelectElement(name)
	if bound == nil {
		return nil
	}
	s, ok := childText(bound, "Date")
	if !ok {
		return nil
	}
	year, ok := YearFromDate(s)
	if !ok {
		return nil
	}
	return &year
}

// ClassEntryFee joins a fee catalog entry to a class or a
// pre-registration. It only exists to order fee references: consumers
// sort by Sequence and keep the ids.
type ClassEntryFee struct {
	ID       uint64
	Sequence uint64
}

// DecodeClassEntryFee reads a ClassEntryFee or EntryEntryFee element
// (both share the same shape).
func DecodeClassEntryFee(el *etree.Element) (ClassEntryFee, error) {
	var f ClassEntryFee
	var err error
	if f.ID, err = requireUint(el, "EntryFeeId"); err != nil {
		return ClassEntryFee{}, err
	}
	if f.Sequence, err = requireUint(el, "Sequence"); err != nil {
		return ClassEntryFee{}, err
	}
	return f, nil
}

// sortedFeeIDs collects the fee-join children with the given tag and
// reduces them to an id list in ascending sequence order.
func sortedFeeIDs(el *etree.Element, tag string) ([]uint64, error) {
	fees, err := Children(el, tag, DecodeClassEntryFee)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(fees, func(i, j int) bool { return fees[i].Sequence < fees[j].Sequence })
	ids := make([]uint64, len(fees))
	for i, f := range fees {
		ids[i] = f.ID
	}
	return ids, nil
}
